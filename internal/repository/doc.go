// Package repository maps logical password paths to encrypted files
// inside a version-controlled working tree.
//
// A repository is a rooted directory that is simultaneously the working
// tree of a git project. It contains exactly one encryption header at the
// reserved path ".header"; every other tracked file is a ciphertext entry
// whose name is its key. Each write stages the entry and creates one
// commit, so history is preserved and recoverable.
//
// The master key is derived fresh for every read and write from the
// user's passphrase and the parameters persisted in the header, and is
// zeroed as soon as the operation completes. Nothing key-related is ever
// persisted besides the salt and cost parameters.
package repository
