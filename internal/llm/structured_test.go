package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOutermostObject_DiscardsSurroundingProse(t *testing.T) {
	got, err := ExtractOutermostObject(`Sure! Here is your plan: {"a": {"b": 1}} Have a nice day.`)

	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)
}

func TestExtractOutermostObject_CodeFence(t *testing.T) {
	raw := "```json\n{\"total_estimated_time\": \"6 hours\"}\n```"

	got, err := ExtractOutermostObject(raw)

	require.NoError(t, err)
	assert.Equal(t, `{"total_estimated_time": "6 hours"}`, got)
}

func TestExtractOutermostObject_NoBraces(t *testing.T) {
	_, err := ExtractOutermostObject("just some text")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractOutermostObject_ClosingBeforeOpening(t *testing.T) {
	_, err := ExtractOutermostObject("} then {")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractOutermostObject_UnrelatedBracesWidenSlice(t *testing.T) {
	got, err := ExtractOutermostObject(`{"a": 1} and later a stray }`)

	require.NoError(t, err)
	assert.Equal(t, `{"a": 1} and later a stray }`, got)

	_, err = DecodeObject([]byte(got))
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestDecodeObject_PreservesOrder(t *testing.T) {
	fields, err := DecodeObject([]byte(`{"z": 1, "a": [1,2], "m": {"x": null}}`))

	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "z", fields[0].Key)
	assert.Equal(t, "a", fields[1].Key)
	assert.Equal(t, "m", fields[2].Key)
	assert.JSONEq(t, `[1,2]`, string(fields[1].Value))
}

func TestDecodeObject_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	fields, err := DecodeObject([]byte(`{"a": 1, "b": 2, "a": 3}`))

	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "3", string(fields[0].Value))
}

func TestDecodeObject_RejectsNonObject(t *testing.T) {
	_, err := DecodeObject([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestDecodeObject_RejectsMalformed(t *testing.T) {
	_, err := DecodeObject([]byte(`{"a": 1,}`))
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
