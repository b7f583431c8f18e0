// Package project locates the root of the Move project that a fuzz
// directory belongs to.
//
// The root is the nearest enclosing directory that holds a Move.toml
// manifest. Outside a Move package the top-level directory of the
// enclosing Git working tree is used instead, found by shelling out to
// the git binary rather than linking a Git library, so that worktrees
// resolve the same way they do in the user's terminal.
package project
