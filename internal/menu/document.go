// Package menu builds the menu and form documents returned to clients.
// Documents follow the ONEm v1 response schema and are serialized as JSON.
package menu

import "encoding/json"

type ContentType string

const (
	ContentTypeMenu ContentType = "menu"
	ContentTypeForm ContentType = "form"
)

type ItemType string

const (
	ItemTypeOption  ItemType = "option"
	ItemTypeContent ItemType = "content"
)

const FormItemTypeString = "string"

type Document interface {
	Response() Response
}

type Response struct {
	ContentType ContentType `json:"content_type"`
	Content     interface{} `json:"content"`
}

func (r Response) JSON() ([]byte, error) {
	return json.Marshal(r)
}

type Item struct {
	Type        ItemType `json:"type"`
	Description string   `json:"description"`
	Method      string   `json:"method,omitempty"`
	Path        string   `json:"path,omitempty"`
}

type Menu struct {
	Type   ContentType `json:"type"`
	Header string      `json:"header,omitempty"`
	Footer string      `json:"footer,omitempty"`
	Body   []Item      `json:"body"`
}

type FormItem struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Header      string `json:"header,omitempty"`
	Footer      string `json:"footer,omitempty"`
}

type FormMeta struct {
	SkipConfirmation bool `json:"skip_confirmation"`
}

type Form struct {
	Type   ContentType `json:"type"`
	Header string      `json:"header,omitempty"`
	Footer string      `json:"footer,omitempty"`
	Body   []FormItem  `json:"body"`
	Method string      `json:"method"`
	Path   string      `json:"path"`
	Meta   FormMeta    `json:"meta"`
}

// Option is a selectable item navigating to path.
func Option(description, method, path string) Item {
	return Item{Type: ItemTypeOption, Description: description, Method: method, Path: path}
}

// Text is a plain item without navigation.
func Text(description string) Item {
	return Item{Type: ItemTypeContent, Description: description}
}

func NewMenu(header, footer string, items ...Item) Menu {
	if items == nil {
		items = []Item{}
	}
	return Menu{Type: ContentTypeMenu, Header: header, Footer: footer, Body: items}
}

func (m Menu) Response() Response {
	return Response{ContentType: ContentTypeMenu, Content: m}
}

func StringItem(name, description, header, footer string) FormItem {
	return FormItem{Type: FormItemTypeString, Name: name, Description: description, Header: header, Footer: footer}
}

// NewForm returns a form submitted without a confirmation step.
func NewForm(method, path string, items ...FormItem) Form {
	return Form{
		Type:   ContentTypeForm,
		Body:   items,
		Method: method,
		Path:   path,
		Meta:   FormMeta{SkipConfirmation: true},
	}
}

func (f Form) Response() Response {
	return Response{ContentType: ContentTypeForm, Content: f}
}
