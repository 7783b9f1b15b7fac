// Package scaffold writes workspace starter files. It powers the
// "setup init" command, producing a role manifest seeded from the embedded
// defaults and a .env.example with the keys the provisioner expects.
package scaffold
