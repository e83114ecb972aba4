// SPDX-License-Identifier: MIT

// Package rich builds and validates the response model accumulated by
// conversation handlers: ordered response items, suggestion chips and
// system-intent payloads. It owns the structural constraints the platform
// enforces; serialization to a concrete wire generation happens elsewhere.
package rich

// Response is the generation-2 rich response model. Items keep insertion
// order; the platform may truncate suggestions but their order is preserved.
type Response struct {
	Items             []Item             `json:"items,omitempty"`
	Suggestions       []Suggestion       `json:"suggestions,omitempty"`
	LinkOutSuggestion *LinkOutSuggestion `json:"linkOutSuggestion,omitempty"`
}

// Item is one element of the item sequence. Exactly one field is set.
type Item struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
	BasicCard      *BasicCard      `json:"basicCard,omitempty"`
	TableCard      *TableCard      `json:"tableCard,omitempty"`
	MediaResponse  *MediaResponse  `json:"mediaResponse,omitempty"`
	CarouselBrowse *BrowseCarousel `json:"carouselBrowse,omitempty"`
}

// SimpleResponse is a bare spoken/displayed reply. TextToSpeech and SSML are
// mutually exclusive on the wire.
type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech,omitempty"`
	SSML         string `json:"ssml,omitempty"`
	DisplayText  string `json:"displayText,omitempty"`
}

// Suggestion is a short suggestion chip.
type Suggestion struct {
	Title string `json:"title"`
}

// LinkOutSuggestion is a chip that leaves the conversation for a URL.
type LinkOutSuggestion struct {
	DestinationName string `json:"destinationName"`
	URL             string `json:"url"`
}

// NewResponse returns an empty rich response.
func NewResponse() *Response {
	return &Response{}
}

// NewSimple builds a simple response item from text, classifying it as SSML
// or plain text-to-speech per the IsSSML rule.
func NewSimple(text, displayText string) *SimpleResponse {
	s := &SimpleResponse{DisplayText: displayText}
	if IsSSML(text) {
		s.SSML = text
	} else {
		s.TextToSpeech = text
	}
	return s
}

// AddSimple appends a simple text-or-SSML item.
func (r *Response) AddSimple(text, displayText string) *Response {
	r.Items = append(r.Items, Item{SimpleResponse: NewSimple(text, displayText)})
	return r
}

// AddBasicCard appends a basic card item.
func (r *Response) AddBasicCard(card *BasicCard) *Response {
	r.Items = append(r.Items, Item{BasicCard: card})
	return r
}

// AddTable appends a table card item.
func (r *Response) AddTable(table *TableCard) *Response {
	r.Items = append(r.Items, Item{TableCard: table})
	return r
}

// AddMedia appends a media response item.
func (r *Response) AddMedia(media *MediaResponse) *Response {
	r.Items = append(r.Items, Item{MediaResponse: media})
	return r
}

// AddBrowseCarousel appends a browse carousel item.
func (r *Response) AddBrowseCarousel(bc *BrowseCarousel) *Response {
	r.Items = append(r.Items, Item{CarouselBrowse: bc})
	return r
}

// AddSuggestions appends suggestion chips, preserving order.
func (r *Response) AddSuggestions(titles ...string) *Response {
	for _, t := range titles {
		r.Suggestions = append(r.Suggestions, Suggestion{Title: t})
	}
	return r
}

// AddLinkOut sets the link-out suggestion chip.
func (r *Response) AddLinkOut(name, url string) *Response {
	r.LinkOutSuggestion = &LinkOutSuggestion{DestinationName: name, URL: url}
	return r
}

// FirstSimple returns the first simple item, or nil. Generation 1 has no item
// sequence concept, so its serializer honors only this item.
func (r *Response) FirstSimple() *SimpleResponse {
	for _, it := range r.Items {
		if it.SimpleResponse != nil {
			return it.SimpleResponse
		}
	}
	return nil
}

// Validate enforces the structural constraints of a non-system-intent
// response: at least one simple item must be present.
func (r *Response) Validate() error {
	if r.FirstSimple() == nil {
		return ErrNoSimpleItem
	}
	return nil
}
