package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/hledger-fmt/output"
)

// TimingCollector collects hierarchical timing data.
// It builds a tree structure of timers that can be reported as a nested view.
type TimingCollector struct {
	root    *timerNode
	current *timerNode
	styles  *output.Styles
	mu      sync.Mutex
}

// timerNode represents a single timed operation in the tree.
type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
	parent   *timerNode
}

// TimingOption configures a TimingCollector.
type TimingOption func(*TimingCollector)

// WithStyles renders the report with terminal styling.
func WithStyles(styles *output.Styles) TimingOption {
	return func(c *TimingCollector) {
		c.styles = styles
	}
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector(opts ...TimingOption) *TimingCollector {
	c := &TimingCollector{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins timing an operation. The first timer becomes the root; later
// ones nest under the most recently started timer that has not ended.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{
		name:  name,
		start: time.Now(),
	}

	if c.root == nil {
		c.root = node
	} else {
		parent := c.current
		if parent == nil {
			parent = c.root
		}
		node.parent = parent
		parent.children = append(parent.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Report outputs the timing tree to a writer.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	formatTimingTree(w, c.root, c.styles)
}

// timingTimer is a Timer implementation that records to a TimingCollector.
type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()

	if t.collector.current == t.node {
		t.collector.current = t.node.parent
	}
}

// Child creates a nested timer without moving the collector's current node,
// so children may be started concurrently.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{
		name:   name,
		start:  time.Now(),
		parent: t.node,
	}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: t.collector, node: node}
}
