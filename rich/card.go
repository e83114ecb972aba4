// SPDX-License-Identifier: MIT

package rich

// Image is a displayed image with accessibility text.
type Image struct {
	URL               string `json:"url"`
	AccessibilityText string `json:"accessibilityText,omitempty"`
	Height            int    `json:"height,omitempty"`
	Width             int    `json:"width,omitempty"`
}

// Button is a card button opening a URL.
type Button struct {
	Title         string         `json:"title"`
	OpenURLAction *OpenURLAction `json:"openUrlAction,omitempty"`
}

// OpenURLAction opens a URL when the enclosing element is tapped.
type OpenURLAction struct {
	URL string `json:"url"`
}

// BasicCard is a card with title, body text, image and buttons.
type BasicCard struct {
	Title               string   `json:"title,omitempty"`
	Subtitle            string   `json:"subtitle,omitempty"`
	FormattedText       string   `json:"formattedText,omitempty"`
	Image               *Image   `json:"image,omitempty"`
	Buttons             []Button `json:"buttons,omitempty"`
	ImageDisplayOptions string   `json:"imageDisplayOptions,omitempty"`
}

// NewBasicCard builds a card with the common title/text/image fields.
func NewBasicCard(title, subtitle, text string, image *Image) *BasicCard {
	return &BasicCard{
		Title:         title,
		Subtitle:      subtitle,
		FormattedText: text,
		Image:         image,
	}
}

// AddButton appends a URL button to the card.
func (c *BasicCard) AddButton(title, url string) *BasicCard {
	c.Buttons = append(c.Buttons, Button{
		Title:         title,
		OpenURLAction: &OpenURLAction{URL: url},
	})
	return c
}

// TableCard displays tabular data on screen surfaces.
type TableCard struct {
	Title            string           `json:"title,omitempty"`
	Subtitle         string           `json:"subtitle,omitempty"`
	Image            *Image           `json:"image,omitempty"`
	ColumnProperties []ColumnProperty `json:"columnProperties,omitempty"`
	Rows             []TableRow       `json:"rows,omitempty"`
	Buttons          []Button         `json:"buttons,omitempty"`
}

// ColumnProperty sets a column header and alignment.
type ColumnProperty struct {
	Header              string `json:"header,omitempty"`
	HorizontalAlignment string `json:"horizontalAlignment,omitempty"`
}

// TableRow is one row of cells.
type TableRow struct {
	Cells         []TableCell `json:"cells,omitempty"`
	DividerAfter  bool        `json:"dividerAfter,omitempty"`
}

// TableCell holds one cell's text.
type TableCell struct {
	Text string `json:"text"`
}

// NewTable builds a table card from column headers and row text.
func NewTable(title string, headers []string, rows [][]string) *TableCard {
	t := &TableCard{Title: title}
	for _, h := range headers {
		t.ColumnProperties = append(t.ColumnProperties, ColumnProperty{Header: h})
	}
	for _, row := range rows {
		tr := TableRow{}
		for _, cell := range row {
			tr.Cells = append(tr.Cells, TableCell{Text: cell})
		}
		t.Rows = append(t.Rows, tr)
	}
	return t
}
