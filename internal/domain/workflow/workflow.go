// Package workflow models the step sequences built in the visual
// workflow editor: nodes placed on a canvas, ordered top to bottom,
// importable from CSV and runnable as a simulated execution.
package workflow

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSteps      = errors.New("no steps in the workflow")
	ErrNoStartStep  = errors.New("workflow has no start step")
	ErrNodeNotFound = errors.New("node not found")
)

// TypeStart marks the node type that makes a workflow runnable.
const TypeStart = "start"

// Node is one step placed on the canvas. Y decides execution order.
type Node struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Owner         string    `json:"owner"`
	EstimatedTime string    `json:"estimatedTime"`
	X             int       `json:"x"`
	Y             int       `json:"y"`
}

// Step is the serialized record of one node in execution order.
type Step struct {
	Step          int    `json:"step"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	Owner         string `json:"owner"`
	EstimatedTime string `json:"estimatedTime"`
}

// Workflow holds the editable node set. Not safe for concurrent use;
// each editing session owns its workflow.
type Workflow struct {
	nodes []*Node
}

// New returns an empty workflow.
func New() *Workflow {
	return &Workflow{}
}

// AddNode places a new node on the canvas. An empty title defaults to
// the capitalized type name, matching the editor behavior.
func (w *Workflow) AddNode(nodeType, title string, x, y int) *Node {
	if title == "" {
		title = capitalize(nodeType)
	}
	node := &Node{
		ID:    uuid.New(),
		Type:  nodeType,
		Title: title,
		X:     x,
		Y:     y,
	}
	w.nodes = append(w.nodes, node)
	return node
}

// UpdateNode replaces the editable fields of a node.
func (w *Workflow) UpdateNode(id uuid.UUID, title, description, owner, estimatedTime string) error {
	for _, n := range w.nodes {
		if n.ID == id {
			n.Title = title
			n.Description = description
			n.Owner = owner
			n.EstimatedTime = estimatedTime
			return nil
		}
	}
	return ErrNodeNotFound
}

// RemoveNode deletes a node from the canvas.
func (w *Workflow) RemoveNode(id uuid.UUID) error {
	for i, n := range w.nodes {
		if n.ID == id {
			w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
			return nil
		}
	}
	return ErrNodeNotFound
}

// Ordered returns the nodes sorted by vertical position, top first.
// The sort is stable so nodes at equal height keep insertion order.
func (w *Workflow) Ordered() []*Node {
	ordered := make([]*Node, len(w.nodes))
	copy(ordered, w.nodes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Y < ordered[j].Y
	})
	return ordered
}

// Steps numbers the ordered nodes into serializable step records.
func (w *Workflow) Steps() []Step {
	ordered := w.Ordered()
	steps := make([]Step, 0, len(ordered))
	for i, n := range ordered {
		steps = append(steps, Step{
			Step:          i + 1,
			Title:         n.Title,
			Type:          n.Type,
			Description:   n.Description,
			Owner:         n.Owner,
			EstimatedTime: n.EstimatedTime,
		})
	}
	return steps
}

// ImportCSV adds nodes from a CSV of "title,type" rows. The first line
// is a header and is discarded; rows with fewer than two fields are
// skipped. Imported nodes stack vertically down the canvas.
func (w *Workflow) ImportCSV(text string) int {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) <= 1 {
		return 0
	}

	added := 0
	y := 40
	for _, line := range lines[1:] {
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		title := strings.TrimSpace(parts[0])
		nodeType := strings.ToLower(strings.TrimSpace(parts[1]))
		w.AddNode(nodeType, title, 100, y)
		y += 80
		added++
	}
	return added
}

// RunStatus is the simulated execution state of one step.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
)

// RunEvent is emitted as each step changes state during a run.
type RunEvent struct {
	Step   int       `json:"step"`
	Title  string    `json:"title"`
	Status RunStatus `json:"status"`
}

// Run simulates an execution pass: every step in order transitions
// running -> completed with stepDelay in between. The run requires at
// least one step and a start step. onEvent may be nil.
func (w *Workflow) Run(ctx context.Context, stepDelay time.Duration, onEvent func(RunEvent)) ([]Step, error) {
	ordered := w.Ordered()
	if len(ordered) == 0 {
		return nil, ErrNoSteps
	}

	hasStart := false
	for _, n := range ordered {
		if n.Type == TypeStart {
			hasStart = true
			break
		}
	}
	if !hasStart {
		return nil, ErrNoStartStep
	}

	for i, n := range ordered {
		emit(onEvent, RunEvent{Step: i + 1, Title: n.Title, Status: StatusRunning})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(stepDelay):
		}
		emit(onEvent, RunEvent{Step: i + 1, Title: n.Title, Status: StatusCompleted})
	}

	return w.Steps(), nil
}

func emit(onEvent func(RunEvent), ev RunEvent) {
	if onEvent != nil {
		onEvent(ev)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
