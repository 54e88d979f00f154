package texcache

// pageList is an intrusive doubly-linked list of sources referencing one
// VRAM page. There is one per page in the cache's pageSources table.
type pageList struct {
	head, tail *listNode
}

// listNode is one Source's participation in one pageList. A Source holds up
// to MaxPageRefsPerSource of these inline. Each node records which list it
// sits on, so InvalidatePage can unlink a node in O(1) without knowing in
// advance which page list it came from — that's the whole point of storing
// the owning list on the node instead of only on the Source.
type listNode struct {
	source *Source
	list   *pageList
	prev   *listNode
	next   *listNode
}

// prepend puts node at the front of list. Used for a source's own texture
// footprint, so LookupSource's front-of-list scan only ever matches primary
// users, never CLUT-only participants.
func listPrepend(list *pageList, src *Source, node *listNode) {
	node.source = src
	node.list = list
	node.prev = nil
	if list.head != nil {
		node.next = list.head
		list.head.prev = node
		list.head = node
	} else {
		node.next = nil
		list.head = node
		list.tail = node
	}
}

// append puts node at the back of list. Used for CLUT-only participation.
func listAppend(list *pageList, src *Source, node *listNode) {
	node.source = src
	node.list = list
	node.next = nil
	if list.tail != nil {
		node.prev = list.tail
		list.tail.next = node
		list.tail = node
	} else {
		node.prev = nil
		list.head = node
		list.tail = node
	}
}

// moveToFront implements the LRU-within-a-page policy on lookup hits.
func listMoveToFront(list *pageList, node *listNode) {
	if node.prev == nil {
		return
	}

	node.prev.next = node.next
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		list.tail = node.prev
	}

	node.prev = nil
	list.head.prev = node
	node.next = list.head
	list.head = node
}

// unlink removes node from whichever list it is on, discovered through the
// node itself rather than a page index passed in by the caller.
func listUnlink(node *listNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		node.list.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		node.list.tail = node.prev
	}
}
