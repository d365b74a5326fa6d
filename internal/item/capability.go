package item

// Durable is implemented by items that carry an optional Duration.
type Durable interface {
	Item
	Duration() *Duration
	SetDuration(d *Duration)
}

// Container is implemented by items that hold an ordered list of children.
type Container interface {
	Item
	Children() []Item
	AppendChild(child Item)
}

type durable struct {
	duration *Duration
}

func (d *durable) Duration() *Duration { return d.duration }

func (d *durable) SetDuration(dur *Duration) { d.duration = dur }

type container struct {
	children []Item
}

func (c *container) Children() []Item { return c.children }

func (c *container) AppendChild(child Item) { c.children = append(c.children, child) }
