package moderation

import (
	"github.com/inkwell-net/inkwell/src/models"
)

// One top-level entry in a rendered thread. Replies are flat; threads only
// nest one level deep.
type ThreadNode struct {
	Comment *models.Comment   `json:"comment"`
	Replies []*models.Comment `json:"replies"`
}

/*
AssembleThread turns a post's approved comments into the shape the public
sees. The input must already be filtered to publicly visible comments,
sorted ascending by (created time, id); both properties are preserved in
the output.

A comment whose parent is not in the input (the parent is pending,
rejected, or deleted) is promoted to top level rather than hidden with it.
Each reply stands on its own, so an invisible parent should not take its
visible children down with it.
*/
func AssembleThread(comments []*models.Comment) []*ThreadNode {
	visible := make(map[int]bool, len(comments))
	for _, c := range comments {
		visible[c.ID] = true
	}

	var nodes []*ThreadNode
	nodeByID := make(map[int]*ThreadNode, len(comments))
	for _, c := range comments {
		if c.ParentID == nil || !visible[*c.ParentID] {
			node := &ThreadNode{Comment: c, Replies: []*models.Comment{}}
			nodes = append(nodes, node)
			nodeByID[c.ID] = node
		}
	}

	for _, c := range comments {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := nodeByID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	return nodes
}
