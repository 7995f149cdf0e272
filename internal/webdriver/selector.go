package webdriver

import "fmt"

// By names a locator strategy.
type By int

const (
	ByID By = iota
	ByName
	ByLinkText
	ByXPath
)

func (b By) String() string {
	switch b {
	case ByID:
		return "id"
	case ByName:
		return "name"
	case ByLinkText:
		return "link text"
	case ByXPath:
		return "xpath"
	default:
		return fmt.Sprintf("By(%d)", int(b))
	}
}

// Selector identifies one element on the page.
type Selector struct {
	By    By
	Value string
}

func ID(id string) Selector            { return Selector{By: ByID, Value: id} }
func Name(name string) Selector        { return Selector{By: ByName, Value: name} }
func LinkText(text string) Selector    { return Selector{By: ByLinkText, Value: text} }
func XPath(expression string) Selector { return Selector{By: ByXPath, Value: expression} }

// Playwright renders the selector in playwright's selector syntax. Link text
// matches anchors whose whole visible text equals the value.
func (s Selector) Playwright() string {
	switch s.By {
	case ByID:
		return fmt.Sprintf("[id=%q]", s.Value)
	case ByName:
		return fmt.Sprintf("[name=%q]", s.Value)
	case ByLinkText:
		return fmt.Sprintf("a:text-is(%q)", s.Value)
	case ByXPath:
		return "xpath=" + s.Value
	default:
		return s.Value
	}
}

func (s Selector) String() string {
	return fmt.Sprintf("%s=%q", s.By, s.Value)
}
