package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"sort"
	gosync "sync"
)

// Hash is a SHA-256 node hash in a Tree.
type Hash = [32]byte

// Tree is an in-memory Merkle tree over source digests.
//
// Structure:
//
//	Root
//	└── Group (one directory, slash-separated, "." for the root)
//	    └── Leaf (file name + source digest)
//
// Two trees built from the same sources have the same root regardless of
// insertion order, so the root identifies the Unicode state of a project.
type Tree struct {
	mu     gosync.Mutex
	groups map[string]*group // keyed by directory
	dirty  bool
	root   Hash
}

type group struct {
	dir    string
	leaves map[string]Hash // file name -> leaf hash
	dirty  bool
	hash   Hash
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{groups: make(map[string]*group)}
}

// TreeOf builds a tree from manifest-style entries (relative path -> digest).
func TreeOf(entries map[string]string) *Tree {
	t := NewTree()
	for rel, digest := range entries {
		t.Insert(rel, digest)
	}
	return t
}

func leafHash(name, digest string) Hash {
	h := sha256.New()
	h.Write([]byte("leaf:"))
	h.Write([]byte(name))
	h.Write([]byte("\x00"))
	h.Write([]byte(digest))
	var out Hash
	h.Sum(out[:0])
	return out
}

// Insert records digest for the slash-separated relative path rel,
// replacing any previous digest.
func (t *Tree) Insert(rel, digest string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dir, name := path.Split(rel)
	dir = path.Clean(dir)

	g, ok := t.groups[dir]
	if !ok {
		g = &group{dir: dir, leaves: make(map[string]Hash)}
		t.groups[dir] = g
	}

	leaf := leafHash(name, digest)
	if old, exists := g.leaves[name]; exists && old == leaf {
		return
	}
	g.leaves[name] = leaf
	g.dirty = true
	t.dirty = true
}

// Root returns the root hash as lowercase hex. An empty tree has a zero
// hash.
func (t *Tree) Root() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dirty {
		t.recompute()
	}
	return hex.EncodeToString(t.root[:])
}

// GroupHashes returns directory -> group hash (hex) for every directory.
func (t *Tree) GroupHashes() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make(map[string]string, len(t.groups))
	for dir, g := range t.groups {
		if g.dirty {
			g.recomputeHash()
		}
		result[dir] = hex.EncodeToString(g.hash[:])
	}
	return result
}

// Diff compares t against other by directory and returns the sorted
// directories whose contents differ, including those present on one side
// only.
func (t *Tree) Diff(other *Tree) []string {
	local := t.GroupHashes()
	remote := other.GroupHashes()

	var changed []string
	for dir, h := range local {
		if remote[dir] != h {
			changed = append(changed, dir)
		}
	}
	for dir := range remote {
		if _, ok := local[dir]; !ok {
			changed = append(changed, dir)
		}
	}
	sort.Strings(changed)
	return changed
}

// recompute recalculates the root from group hashes. Caller holds t.mu.
func (t *Tree) recompute() {
	t.dirty = false
	if len(t.groups) == 0 {
		t.root = Hash{}
		return
	}

	// Directories are hashed in name order
	dirs := make([]string, 0, len(t.groups))
	for dir := range t.groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	h := sha256.New()
	h.Write([]byte("root:"))
	for _, dir := range dirs {
		g := t.groups[dir]
		if g.dirty {
			g.recomputeHash()
		}
		h.Write(g.hash[:])
	}
	h.Sum(t.root[:0])
}

// recomputeHash recalculates the group hash from its leaves.
func (g *group) recomputeHash() {
	g.dirty = false

	names := make([]string, 0, len(g.leaves))
	for name := range g.leaves {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte("grp:"))
	// The directory is part of the hash so identical files in different
	// directories give different group hashes.
	h.Write([]byte(g.dir))
	h.Write([]byte("\x00"))
	for _, name := range names {
		leaf := g.leaves[name]
		h.Write(leaf[:])
	}
	h.Sum(g.hash[:0])
}
