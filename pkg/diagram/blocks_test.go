package diagram

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/netsketch/pkg/errors"
)

func TestTwoConvPoolBlock(t *testing.T) {
	b, err := NewTwoConvPoolBlock("enc1", "input", "pool_enc1", WithFilters(64))
	if err != nil {
		t.Fatalf("NewTwoConvPoolBlock: %v", err)
	}

	children := b.Children()
	if len(children) != 3 {
		t.Fatalf("len(Children()) = %d, want 3", len(children))
	}

	ccr, ok := children[0].(*ConvConvRelu)
	if !ok {
		t.Fatalf("first child is %T, want *ConvConvRelu", children[0])
	}
	if ccr.AnchorName() != "ccr_enc1" {
		t.Errorf("ccr anchor = %q, want ccr_enc1", ccr.AnchorName())
	}
	if !strings.Contains(ccr.Build()[0], "at (input-east)") {
		t.Errorf("stage should attach to bottom anchor:\n%s", ccr.Build()[0])
	}

	pool, ok := children[1].(*Pool)
	if !ok {
		t.Fatalf("second child is %T, want *Pool", children[1])
	}
	if pool.AnchorName() != "pool_enc1" {
		t.Errorf("pool anchor = %q, want pool_enc1", pool.AnchorName())
	}
	// Default stage height 32 shrinks by floor(32/4) = 8.
	if !strings.Contains(pool.Build()[0], "height=24") {
		t.Errorf("pool should shrink the stage face:\n%s", pool.Build()[0])
	}

	conn, ok := children[2].(*Connection)
	if !ok {
		t.Fatalf("third child is %T, want *Connection", children[2])
	}
	of, to := conn.Endpoints()
	if of != "input" || to != "ccr_enc1" {
		t.Errorf("Endpoints() = %q, %q, want input, ccr_enc1", of, to)
	}
}

func TestBlockBuildEqualsChildren(t *testing.T) {
	b, err := NewTwoConvPoolBlock("enc1", "input", "pool_enc1")
	if err != nil {
		t.Fatalf("NewTwoConvPoolBlock: %v", err)
	}
	var want []string
	for _, c := range b.Children() {
		want = append(want, c.Build()...)
	}
	if got := b.Build(); !reflect.DeepEqual(got, want) {
		t.Errorf("Build() should concatenate child fragments\ngot:  %v\nwant: %v", got, want)
	}
}

func TestUnconvBlock(t *testing.T) {
	b, err := NewUnconvBlock("up4", "bottleneck", "top_up4", WithFilters(512))
	if err != nil {
		t.Fatalf("NewUnconvBlock: %v", err)
	}

	children := b.Children()
	if len(children) != 6 {
		t.Fatalf("len(Children()) = %d, want 6", len(children))
	}

	wantAnchors := []string{"unpool_up4", "ccr_res_up4", "ccr_up4", "ccr_res_c_up4", "top_up4"}
	for i, want := range wantAnchors {
		a, ok := children[i].(Anchored)
		if !ok {
			t.Fatalf("child %d is %T, not Anchored", i, children[i])
		}
		if a.AnchorName() != want {
			t.Errorf("child %d anchor = %q, want %q", i, a.AnchorName(), want)
		}
	}

	conn, ok := children[5].(*Connection)
	if !ok {
		t.Fatalf("last child is %T, want *Connection", children[5])
	}
	of, to := conn.Endpoints()
	if of != "bottleneck" || to != "unpool_up4" {
		t.Errorf("Endpoints() = %q, %q, want bottleneck, unpool_up4", of, to)
	}

	// The filter count propagates into each convolutional child.
	if !strings.Contains(children[2].Build()[0], "xlabel={{ 512, }}") {
		t.Errorf("filters not applied to inner conv:\n%s", children[2].Build()[0])
	}
}

func TestResBlock(t *testing.T) {
	b, err := NewResBlock(4, "res1", "input", "end", WithFilters(128))
	if err != nil {
		t.Fatalf("NewResBlock: %v", err)
	}

	children := b.Children()
	// Four convs, four connections, one skip.
	if len(children) != 9 {
		t.Fatalf("len(Children()) = %d, want 9", len(children))
	}

	wantAnchors := []string{"res1_0", "res1_1", "res1_2", "end"}
	var got []string
	for _, c := range children {
		if a, ok := c.(Anchored); ok {
			got = append(got, a.AnchorName())
		}
	}
	if !reflect.DeepEqual(got, wantAnchors) {
		t.Errorf("conv anchors = %v, want %v", got, wantAnchors)
	}

	skip, ok := children[len(children)-1].(*Skip)
	if !ok {
		t.Fatalf("last child is %T, want *Skip", children[len(children)-1])
	}
	of, to := skip.Endpoints()
	if of != "res1_1" || to != "res1_2" {
		t.Errorf("skip Endpoints() = %q, %q, want res1_1, res1_2", of, to)
	}
}

func TestResBlockTooShort(t *testing.T) {
	_, err := NewResBlock(1, "res1", "input", "end")
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestBlockGeometryPropagates(t *testing.T) {
	_, err := NewTwoConvPoolBlock("enc1", "input", "pool_enc1", WithShape(0, 32, 32))
	if errors.GetCode(err) != errors.ErrCodeInvalidGeometry {
		t.Fatalf("expected INVALID_GEOMETRY, got %v", err)
	}
}
