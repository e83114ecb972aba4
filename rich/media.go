// SPDX-License-Identifier: MIT

package rich

// MediaResponse plays audio on the surface.
type MediaResponse struct {
	MediaType    string        `json:"mediaType,omitempty"`
	MediaObjects []MediaObject `json:"mediaObjects,omitempty"`
}

// MediaObject is one playable audio item.
type MediaObject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ContentURL  string `json:"contentUrl"`
	Icon        *Image `json:"icon,omitempty"`
	LargeImage  *Image `json:"largeImage,omitempty"`
}

// NewMedia builds an audio media response from one or more objects.
func NewMedia(objects ...MediaObject) *MediaResponse {
	return &MediaResponse{MediaType: "AUDIO", MediaObjects: objects}
}

// BrowseCarousel presents a scrollable set of web links on browser-capable
// surfaces.
type BrowseCarousel struct {
	Items []BrowseItem `json:"items,omitempty"`
}

// BrowseItem is one tile of a browse carousel.
type BrowseItem struct {
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Footer        string         `json:"footer,omitempty"`
	Image         *Image         `json:"image,omitempty"`
	OpenURLAction *OpenURLAction `json:"openUrlAction,omitempty"`
}

// NewBrowseCarousel validates the two-item floor shared with selection
// carousels and returns the carousel.
func NewBrowseCarousel(items ...BrowseItem) (*BrowseCarousel, error) {
	if len(items) < 2 {
		return nil, ErrCarouselTooSmall
	}
	return &BrowseCarousel{Items: items}, nil
}
