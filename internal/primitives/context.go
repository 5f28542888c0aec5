package primitives

import (
	"maps"
	"sort"
)

// Context is a key-value blackboard that actions write and expression guards
// read. Instances are single-threaded, so Context carries no lock.
type Context struct {
	data map[string]any
}

func NewContext() *Context {
	return &Context{data: map[string]any{}}
}

func (c *Context) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *Context) Set(key string, val any) {
	c.data[key] = val
}

func (c *Context) Delete(key string) {
	delete(c.data, key)
}

// Int returns the value under key when it holds an integer type.
func (c *Context) Int(key string) (int64, bool) {
	switch v := c.data[key].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Keys returns the keys in sorted order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the data for reporting.
func (c *Context) Snapshot() map[string]any {
	return maps.Clone(c.data)
}
