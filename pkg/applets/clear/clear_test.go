package clear_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/clear"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestClear(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "")
	res := clear.Run(ctx, nil)
	testutil.AssertStatus(t, res.Status, core.StatusInfo)
	testutil.AssertOutput(t, res.Output, clear.Sequence)
}
