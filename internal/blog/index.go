package blog

import "sort"

// IndexNode is one addressable grouping of posts. The root owns its entire
// subtree; children are created explicitly on first insert and no node is
// ever shared between two parents.
type IndexNode struct {
	// Segments is the node's path from the root, e.g. ["2014", "08"] or
	// ["octocat"]. Empty for the root.
	Segments []string

	// Posts holds the posts belonging directly to this node, newest first.
	Posts []Post

	// Children maps a single path segment to the child node for it.
	Children map[string]*IndexNode
}

// child returns the child node for segment, creating it if missing.
func (n *IndexNode) child(segment string) *IndexNode {
	if n.Children == nil {
		n.Children = make(map[string]*IndexNode)
	}
	c, ok := n.Children[segment]
	if !ok {
		segs := make([]string, len(n.Segments)+1)
		copy(segs, n.Segments)
		segs[len(n.Segments)] = segment
		c = &IndexNode{Segments: segs}
		n.Children[segment] = c
	}
	return c
}

// insert appends post to the node identified by key, descending from n and
// creating intermediate nodes on demand.
func (n *IndexNode) insert(key []string, post Post) {
	node := n
	for _, segment := range key {
		node = node.child(segment)
	}
	node.Posts = append(node.Posts, post)
}

// ChildSegments returns the node's child segments in ascending order.
// Map iteration order is not deterministic; callers that need reproducible
// output (the walker, tests) go through this.
func (n *IndexNode) ChildSegments() []string {
	segments := make([]string, 0, len(n.Children))
	for segment := range n.Children {
		segments = append(segments, segment)
	}
	sort.Strings(segments)
	return segments
}

// Build constructs the index tree for posts. The input must already be
// ordered newest-first (the repository contract); each node's post list is
// then newest-first by construction, with no re-sort.
//
// A post whose timestamp cannot be represented as a valid UTC instant aborts
// the build with a post-keyed error: a partially indexed site is worse than
// a clear failure.
//
// Tags share the root namespace with years, so a tag spelled like "2014"
// lands in the same node as that year's posts. Same behavior for both.
func Build(posts []Post) (*IndexNode, error) {
	root := &IndexNode{}
	for _, post := range posts {
		keys, err := membershipKeys(post)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			root.insert(key, post)
		}
	}
	return root, nil
}
