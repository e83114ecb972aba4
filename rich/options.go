// SPDX-License-Identifier: MIT

package rich

// OptionInfo identifies a selectable item and its spoken synonyms.
type OptionInfo struct {
	Key      string   `json:"key"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// OptionItem is one selectable entry of a list or carousel.
type OptionItem struct {
	OptionInfo  OptionInfo `json:"optionInfo"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       *Image     `json:"image,omitempty"`
}

// ListSelect is a vertical selection list.
type ListSelect struct {
	Title string       `json:"title,omitempty"`
	Items []OptionItem `json:"items"`
}

// CarouselSelect is a horizontal selection carousel.
type CarouselSelect struct {
	Items []OptionItem `json:"items"`
}

// NewList validates and builds a selection list. Fewer than two items is a
// configuration error.
func NewList(title string, items ...OptionItem) (*ListSelect, error) {
	if len(items) < 2 {
		return nil, ErrListTooSmall
	}
	return &ListSelect{Title: title, Items: items}, nil
}

// NewCarousel validates and builds a selection carousel. Fewer than two items
// is a configuration error.
func NewCarousel(items ...OptionItem) (*CarouselSelect, error) {
	if len(items) < 2 {
		return nil, ErrCarouselTooSmall
	}
	return &CarouselSelect{Items: items}, nil
}
