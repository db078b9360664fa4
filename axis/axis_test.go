package axis

import (
	"fmt"
	"testing"

	"github.com/torlangballe/mdhist/ztesting"
)

func TestKindString(t *testing.T) {
	fmt.Println("TestKindString")
	ztesting.Equal(t, "regular kind", KindRegular.String(), "regular")
	ztesting.Equal(t, "circular kind", KindCircular.String(), "circular")
	ztesting.Equal(t, "variable kind", KindVariable.String(), "variable")
	ztesting.Equal(t, "integer kind", KindInteger.String(), "integer")
	ztesting.Equal(t, "category kind", KindCategory.String(), "category")
	ztesting.Equal(t, "unrecognized kind", Kind(99).String(), "unknown")
}

func TestOverflowSentinel(t *testing.T) {
	fmt.Println("TestOverflowSentinel")
	ztesting.Equal(t, "overflow(4)", Overflow(4), 4)
	ztesting.Equal(t, "underflow const", Underflow, -1)
}

func TestClipIndexNoUOflow(t *testing.T) {
	fmt.Println("TestClipIndexNoUOflow")
	ztesting.Equal(t, "below range collapses to n", clipIndex(-1, 4, false), 4)
	ztesting.Equal(t, "at range end collapses to n", clipIndex(4, 4, false), 4)
	ztesting.Equal(t, "in range passes through", clipIndex(2, 4, false), 2)
}

func TestClipIndexWithUOflow(t *testing.T) {
	fmt.Println("TestClipIndexWithUOflow")
	ztesting.Equal(t, "below range is underflow", clipIndex(-1, 4, true), Underflow)
	ztesting.Equal(t, "at range end is overflow", clipIndex(4, 4, true), 4)
	ztesting.Equal(t, "in range passes through", clipIndex(2, 4, true), 2)
}
