package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlhm-lang/mlhm/internal/types"
)

func TestFromTypeErrorOccursCheck(t *testing.T) {
	err := &types.OccursCheckError{Var: 1, In: types.TInt}
	rep := FromTypeError(err, "typecheck")
	assert.Equal(t, TC001, rep.Code)
	assert.Equal(t, "typecheck", rep.Phase)
}

func TestFromTypeErrorNoVariable(t *testing.T) {
	err := &types.NoVariableError{Name: "y"}
	rep := FromTypeError(err, "typecheck")
	assert.Equal(t, TC002, rep.Code)
	assert.Equal(t, "y", rep.Data["name"])
	require.NotNil(t, rep.Fix)
}

func TestFromTypeErrorUnification(t *testing.T) {
	err := &types.UnificationError{L: types.TInt, R: types.TBool}
	rep := FromTypeError(err, "typecheck")
	assert.Equal(t, TC003, rep.Code)
}

func TestFromTypeErrorNotImplemented(t *testing.T) {
	err := &types.NotImplementedError{Where: "recursive binding with a non-variable pattern"}
	rep := FromTypeError(err, "typecheck")
	assert.Equal(t, TC005, rep.Code)
}

func TestFromTypeErrorNotImplementedElaboratePhase(t *testing.T) {
	err := &types.NotImplementedError{Where: "recursive binding with a non-variable pattern"}
	rep := FromTypeError(err, "elaborate")
	assert.Equal(t, PE001, rep.Code)
	assert.Equal(t, "elaborate", rep.Phase)
}

func TestFromTypeErrorEmptyLet(t *testing.T) {
	rep := FromTypeError(&types.EmptyLetError{}, "typecheck")
	assert.Equal(t, TC006, rep.Code)
}

func TestReportToJSONCompact(t *testing.T) {
	rep := &Report{Schema: "ailang.error/v1", Code: TC002, Phase: "typecheck", Message: "unbound variable: y"}
	js, err := rep.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, js, `"code":"TC002"`)
}

func TestWrapReportRoundTrip(t *testing.T) {
	rep := &Report{Code: TC001, Message: "boom"}
	err := WrapReport(rep)
	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rep, got)
}
