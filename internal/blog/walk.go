package blog

import "strconv"

// Visitor receives one (output path, page) pair per index page. The first
// page of a node lives at the node's own address; page N>1 gets an extra
// trailing segment equal to the decimal page number.
type Visitor func(segments []string, page Page) error

// Walk traverses the index tree depth-first, pre-order, paginating every
// node's posts with the given page size and invoking visit once per page.
// Children are visited in ascending segment order so repeated walks of the
// same tree produce identical output order.
//
// A visitor error aborts the walk and is returned unchanged. An invalid
// page size is reported before anything is visited.
func Walk(root *IndexNode, size int, visit Visitor) error {
	// Validate once up front so a bad size fails before any output, not
	// midway through the tree.
	if _, err := Paginate(nil, size); err != nil {
		return err
	}
	return walk(root, size, visit)
}

func walk(node *IndexNode, size int, visit Visitor) error {
	pages, err := Paginate(node.Posts, size)
	if err != nil {
		return err
	}
	for _, page := range pages {
		page.Segments = node.Segments
		segments := node.Segments
		if page.Number > 1 {
			segments = append(append([]string{}, node.Segments...), strconv.Itoa(page.Number))
		}
		if err := visit(segments, page); err != nil {
			return err
		}
	}
	for _, segment := range node.ChildSegments() {
		if err := walk(node.Children[segment], size, visit); err != nil {
			return err
		}
	}
	return nil
}
