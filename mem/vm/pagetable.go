package vm

import (
	"container/list"
	"sort"
)

// A PageTable maps the resident virtual pages to the frames that hold them.
type PageTable interface {
	Insert(vpn VPN, frame FrameIndex)
	Remove(vpn VPN)
	Find(vpn VPN) (FrameIndex, bool)
	Len() int
	Mappings() []Mapping
}

// NewPageTable creates a new PageTable.
func NewPageTable() PageTable {
	return &pageTableImpl{
		entries:      list.New(),
		entriesTable: make(map[VPN]*list.Element),
	}
}

// pageTableImpl keeps the entries in a list in insertion order, with a map
// for fast lookups. It is not safe for concurrent use.
type pageTableImpl struct {
	entries      *list.List
	entriesTable map[VPN]*list.Element
}

// Insert adds a new mapping. Inserting a page that is already mapped panics.
func (pt *pageTableImpl) Insert(vpn VPN, frame FrameIndex) {
	pt.pageMustNotExist(vpn)

	elem := pt.entries.PushBack(Mapping{VPN: vpn, Frame: frame})
	pt.entriesTable[vpn] = elem
}

// Remove deletes the mapping of a page. Removing an unmapped page panics.
func (pt *pageTableImpl) Remove(vpn VPN) {
	pt.pageMustExist(vpn)

	elem := pt.entriesTable[vpn]
	pt.entries.Remove(elem)
	delete(pt.entriesTable, vpn)
}

// Find returns the frame that holds the page. The bool return value indicates
// if the page is resident or not.
func (pt *pageTableImpl) Find(vpn VPN) (FrameIndex, bool) {
	elem, found := pt.entriesTable[vpn]
	if !found {
		return NoFrame, false
	}

	return elem.Value.(Mapping).Frame, true
}

// Len returns the number of resident pages.
func (pt *pageTableImpl) Len() int {
	return len(pt.entriesTable)
}

// Mappings returns a copy of all the entries, sorted by page number.
func (pt *pageTableImpl) Mappings() []Mapping {
	mappings := make([]Mapping, 0, pt.entries.Len())
	for e := pt.entries.Front(); e != nil; e = e.Next() {
		mappings = append(mappings, e.Value.(Mapping))
	}

	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].VPN < mappings[j].VPN
	})

	return mappings
}

func (pt *pageTableImpl) pageMustExist(vpn VPN) {
	_, found := pt.entriesTable[vpn]
	if !found {
		panic("page does not exist")
	}
}

func (pt *pageTableImpl) pageMustNotExist(vpn VPN) {
	_, found := pt.entriesTable[vpn]
	if found {
		panic("page exist")
	}
}
