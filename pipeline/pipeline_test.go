package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/menukit/core"
)

type fakeNode struct {
	name string
	kind Kind
	fn   func(items []*core.Item) ([]*core.Item, error)
}

func (n *fakeNode) Name() string { return n.name }
func (n *fakeNode) Kind() Kind   { return n.kind }
func (n *fakeNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items)
}

func appendNode(name string, id int64) *fakeNode {
	return &fakeNode{name: name, kind: KindRecall, fn: func(items []*core.Item) ([]*core.Item, error) {
		return append(items, core.NewItem(&core.MenuItem{ID: id})), nil
	}}
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		appendNode("a", 1),
		appendNode("b", 2),
	}}

	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("Run() output = %v, want items 1 then 2", out)
	}
}

func TestPipeline_NodeErrorAborts(t *testing.T) {
	wantErr := errors.New("node failed")
	reached := false
	p := &Pipeline{Nodes: []Node{
		&fakeNode{name: "boom", kind: KindRank, fn: func([]*core.Item) ([]*core.Item, error) {
			return nil, wantErr
		}},
		&fakeNode{name: "after", kind: KindRank, fn: func(items []*core.Item) ([]*core.Item, error) {
			reached = true
			return items, nil
		}},
	}}

	_, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
	if reached {
		t.Fatal("nodes after a failing node must not run")
	}
}

type recordingHook struct {
	before []string
	after  []string
	err    error
}

func (h *recordingHook) BeforeNode(_ context.Context, _ *core.RecommendContext, node Node, items []*core.Item) ([]*core.Item, error) {
	h.before = append(h.before, node.Name())
	return items, h.err
}

func (h *recordingHook) AfterNode(_ context.Context, _ *core.RecommendContext, node Node, items []*core.Item, _ error) ([]*core.Item, error) {
	h.after = append(h.after, node.Name())
	return items, h.err
}

func TestPipeline_Hooks(t *testing.T) {
	hook := &recordingHook{}
	p := &Pipeline{
		Nodes: []Node{appendNode("a", 1), appendNode("b", 2)},
		Hooks: []Hook{hook},
	}

	if _, err := p.Run(context.Background(), &core.RecommendContext{}, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(hook.before) != 2 || len(hook.after) != 2 {
		t.Fatalf("hook calls before=%v after=%v, want each node wrapped", hook.before, hook.after)
	}
}

func TestPipeline_HookErrorIsNotFatal(t *testing.T) {
	hook := &recordingHook{err: errors.New("hook failed")}
	p := &Pipeline{
		Nodes: []Node{appendNode("a", 1)},
		Hooks: []Hook{hook},
	}

	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v, hook errors must not abort the chain", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
}
