package common

import (
	"strconv"
)

type Page struct {
	Number   int
	NumPages int
	Total    int64

	// Offset and Limit select the records of this page.
	Offset int
	Limit  int
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) PreviousNumber() int {
	return p.Number - 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

// Numbers returns all page numbers, from 1 to NumPages.
func (p Page) Numbers() []int {
	result := make([]int, 0, p.NumPages)
	for i := 1; i <= p.NumPages; i++ {
		result = append(result, i)
	}

	return result
}

// Paginate chooses the page from a raw page parameter. A missing or
// non-numeric parameter selects the first page, a number out of range selects
// the last page. There is always at least one page, maybe empty.
func Paginate(total int64, pageSize int, raw string) Page {
	if pageSize <= 0 {
		pageSize = 10
	}

	numPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if numPages == 0 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Total:    total,
		Offset:   (number - 1) * pageSize,
		Limit:    pageSize,
	}
}
