package item

import "sort"

// Colour is a socket colour as reported by the stash API.
type Colour string

const (
	ColourRed   Colour = "R"
	ColourGreen Colour = "G"
	ColourBlue  Colour = "B"
	ColourWhite Colour = "W"
	ColourAbyss Colour = "A"
)

// Socket is a single socket. Sockets sharing a Group are linked.
type Socket struct {
	Group  int    `json:"group"`
	Colour Colour `json:"colour"`
}

// SocketCount returns the number of sockets on the item.
func (i Item) SocketCount() int {
	return len(i.Sockets)
}

// LinkGroups returns the socket colours grouped by link group, ordered by group id.
func (i Item) LinkGroups() [][]Colour {
	if len(i.Sockets) == 0 {
		return nil
	}

	var (
		order  []int
		groups = make(map[int][]Colour)
	)
	for _, s := range i.Sockets {
		if _, ok := groups[s.Group]; !ok {
			order = append(order, s.Group)
		}
		groups[s.Group] = append(groups[s.Group], s.Colour)
	}

	// Group ids normally arrive ascending; sort so input order never matters.
	sort.Ints(order)

	out := make([][]Colour, 0, len(order))
	for _, g := range order {
		out = append(out, groups[g])
	}
	return out
}

// MaxLinks returns the size of the largest link group.
func (i Item) MaxLinks() int {
	largest := 0
	for _, g := range i.LinkGroups() {
		if len(g) > largest {
			largest = len(g)
		}
	}
	return largest
}

// HasRGBLink reports whether one link group holds a red, a green and a blue socket.
// White sockets count as any colour.
func (i Item) HasRGBLink() bool {
	for _, g := range i.LinkGroups() {
		var r, gr, b, w int
		for _, c := range g {
			switch c {
			case ColourRed:
				r++
			case ColourGreen:
				gr++
			case ColourBlue:
				b++
			case ColourWhite:
				w++
			}
		}
		missing := 0
		for _, n := range []int{r, gr, b} {
			if n == 0 {
				missing++
			}
		}
		if missing <= w && len(g) >= 3 {
			return true
		}
	}
	return false
}
