package model

import "encoding/json"

// FavoritesList is the user's saved palettes, most recently added first.
// It never contains the same palette twice.
//
// Add and Remove return new lists and never modify the receiver, so a list
// handed to a subscriber or a store stays stable.
type FavoritesList []Palette

// Contains reports whether p is already saved.
func (l FavoritesList) Contains(p Palette) bool {
	return l.IndexOf(p) >= 0
}

// IndexOf returns the position of p, or -1.
func (l FavoritesList) IndexOf(p Palette) int {
	for i, fav := range l {
		if fav == p {
			return i
		}
	}
	return -1
}

// Add returns a new list with p prepended.
// If p is already saved the list is returned unchanged.
func (l FavoritesList) Add(p Palette) FavoritesList {
	if l.Contains(p) {
		return l
	}
	out := make(FavoritesList, 0, len(l)+1)
	out = append(out, p)
	return append(out, l...)
}

// Remove returns a new list without the entry at index.
// An out-of-range index returns the list unchanged.
func (l FavoritesList) Remove(index int) FavoritesList {
	if index < 0 || index >= len(l) {
		return l
	}
	out := make(FavoritesList, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...)
}

// Dedupe keeps the first occurrence of every palette.
func (l FavoritesList) Dedupe() FavoritesList {
	out := make(FavoritesList, 0, len(l))
	for _, p := range l {
		if !out.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a copy that shares no backing array with l.
func (l FavoritesList) Clone() FavoritesList {
	out := make(FavoritesList, len(l))
	copy(out, l)
	return out
}

// MarshalJSON writes an empty array rather than null for an empty list.
func (l FavoritesList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Palette(l))
}
