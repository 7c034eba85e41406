package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/kode4food/flagstaff/pkg/api"
)

// MaxListLength caps the number of items a list block can add
const MaxListLength = 200_000

const (
	allItems  = -2
	noItem    = -1
	lastItem  = "last"
	randItem  = "random"
	anyItem   = "any"
	everyItem = "all"
)

func dataBlocks() Registry {
	return Registry{
		api.OpVariable:          reporter(variable),
		api.OpSetVariableTo:     command(setVariableTo),
		api.OpChangeVariableBy:  command(changeVariableBy),
		api.OpShowVariable:      command(noMonitor),
		api.OpHideVariable:      command(noMonitor),
		api.OpListContents:      reporter(listContents),
		api.OpAddToList:         command(addToList),
		api.OpDeleteOfList:      command(deleteOfList),
		api.OpDeleteAllOfList:   command(deleteAllOfList),
		api.OpInsertAtList:      command(insertAtList),
		api.OpReplaceItemOfList: command(replaceItemOfList),
		api.OpItemOfList:        reporter(itemOfList),
		api.OpItemNumOfList:     reporter(itemNumOfList),
		api.OpLengthOfList:      reporter(lengthOfList),
		api.OpListContainsItem:  reporter(listContainsItem),
		api.OpShowList:          command(noMonitor),
		api.OpHideList:          command(noMonitor),
	}
}

func variable(c *Context) api.Value {
	v := c.Sprite().Variable(c.FieldID("VARIABLE"), c.Field("VARIABLE"))
	if v == nil {
		return api.Value{}
	}
	return v.Value
}

func setVariableTo(c *Context) Result {
	v := c.ensureVariable()
	c.Engine().SetVariable(v, c.Input("VALUE"))
	return Continue
}

func changeVariableBy(c *Context) Result {
	v := c.ensureVariable()
	delta := c.Number("VALUE")
	c.Engine().SetVariable(v, api.Num(v.Value.AsNumber()+delta))
	return Continue
}

// noMonitor ignores monitor visibility. A headless engine draws no
// variable or list monitors
func noMonitor(*Context) Result {
	return Continue
}

func listContents(c *Context) api.Value {
	l := c.list()
	if l == nil {
		return api.Str("")
	}
	sep := ""
	for _, it := range l.Items {
		if utf8.RuneCountInString(it.AsString()) != 1 {
			sep = " "
			break
		}
	}
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.AsString()
	}
	return api.Str(strings.Join(parts, sep))
}

func addToList(c *Context) Result {
	l := c.ensureList()
	if len(l.Items) < MaxListLength {
		l.Items = append(l.Items, c.Input("ITEM"))
	}
	return Continue
}

func deleteOfList(c *Context) Result {
	l := c.ensureList()
	switch idx := c.listIndex(c.Input("INDEX"), len(l.Items), true); idx {
	case allItems:
		l.Items = nil
	case noItem:
	default:
		l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	}
	return Continue
}

func deleteAllOfList(c *Context) Result {
	c.ensureList().Items = nil
	return Continue
}

func insertAtList(c *Context) Result {
	l := c.ensureList()
	if len(l.Items) >= MaxListLength {
		return Continue
	}
	item := c.Input("ITEM")
	idx := c.listIndex(c.Input("INDEX"), len(l.Items)+1, false)
	if idx == noItem {
		return Continue
	}
	l.Items = append(l.Items, api.Value{})
	copy(l.Items[idx+1:], l.Items[idx:])
	l.Items[idx] = item
	return Continue
}

func replaceItemOfList(c *Context) Result {
	l := c.ensureList()
	idx := c.listIndex(c.Input("INDEX"), len(l.Items), false)
	if idx != noItem {
		l.Items[idx] = c.Input("ITEM")
	}
	return Continue
}

func itemOfList(c *Context) api.Value {
	l := c.list()
	if l == nil {
		return api.Str("")
	}
	idx := c.listIndex(c.Input("INDEX"), len(l.Items), false)
	if idx == noItem {
		return api.Str("")
	}
	return l.Items[idx]
}

func itemNumOfList(c *Context) api.Value {
	l := c.list()
	if l == nil {
		return api.Int(0)
	}
	item := c.Input("ITEM")
	for i, it := range l.Items {
		if it.Equal(item) {
			return api.Int(i + 1)
		}
	}
	return api.Int(0)
}

func lengthOfList(c *Context) api.Value {
	l := c.list()
	if l == nil {
		return api.Int(0)
	}
	return api.Int(len(l.Items))
}

func listContainsItem(c *Context) api.Value {
	return api.Bool(itemNumOfList(c).AsInt() > 0)
}

func (c *Context) ensureVariable() *api.Variable {
	return c.Sprite().EnsureVariable(c.FieldID("VARIABLE"), c.Field("VARIABLE"))
}

func (c *Context) list() *api.List {
	return c.Sprite().List(c.FieldID("LIST"), c.Field("LIST"))
}

func (c *Context) ensureList() *api.List {
	return c.Sprite().EnsureList(c.FieldID("LIST"), c.Field("LIST"))
}

// listIndex converts a 1-based list index, or one of the last, random and
// all tokens, into a slice index for a list of n items
func (c *Context) listIndex(v api.Value, n int, acceptAll bool) int {
	if n <= 0 {
		return noItem
	}
	switch strings.ToLower(v.AsString()) {
	case lastItem:
		return n - 1
	case randItem, anyItem:
		return c.Engine().rand.IntN(n)
	case everyItem:
		if acceptAll {
			return allItems
		}
		return noItem
	}
	idx := v.AsInt() - 1
	if idx < 0 || idx >= n {
		return noItem
	}
	return idx
}
