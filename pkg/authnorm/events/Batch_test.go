// Copyright 2024 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatchKeepsOrderAndRawEvents(t *testing.T) {
	b, err := DecodeBatch(strings.NewReader(`{"events":[{"a":1},"not an object",{"b":{"c":"d"}},null]}`))
	require.NoError(t, err)
	require.Len(t, b.Events, 4)
	assert.Equal(t, `{"a":1}`, string(b.Events[0].Bytes()))
	assert.Equal(t, `"not an object"`, string(b.Events[1].Bytes()))
	assert.False(t, b.Events[1].Has("a"))
	c, ok := b.Events[2].String("b.c")
	assert.True(t, ok)
	assert.Equal(t, "d", c)
	assert.False(t, b.Events[3].Has("a"))
}

func TestDecodeBatchBoundaryErrors(t *testing.T) {
	_, err := DecodeBatch(strings.NewReader(`{"events":[`))
	assert.Error(t, err)

	_, err = DecodeBatch(strings.NewReader(`{"results":[]}`))
	assert.ErrorIs(t, err, ErrMissingEvents)

	_, err = DecodeBatch(strings.NewReader(`{"events":null}`))
	assert.ErrorIs(t, err, ErrMissingEvents)

	_, err = DecodeBatch(strings.NewReader(`{"events":{"a":1}}`))
	assert.Error(t, err)

	_, err = DecodeBatch(strings.NewReader(``))
	assert.Error(t, err)
}

func TestDecodeBatchRejectsTrailingData(t *testing.T) {
	for _, in := range []string{
		`{"events":[{"a":1}]} {"events":[`,
		`{"events":[]}{}`,
		`{"events":[]} x`,
		`{"events":[]}]`,
	} {
		_, err := DecodeBatch(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrTrailingData, in)
	}

	b, err := DecodeBatch(strings.NewReader("{\"events\":[{\"a\":1}]}\n\n"))
	require.NoError(t, err)
	assert.Len(t, b.Events, 1)
}

func TestDecodeEmptyBatch(t *testing.T) {
	b, err := DecodeBatch(strings.NewReader(`{"events":[]}`))
	require.NoError(t, err)
	assert.Empty(t, b.Events)

	var buf bytes.Buffer
	require.NoError(t, EncodeResults(&buf, ResultBatch{}))
	assert.JSONEq(t, `{"results":[]}`, buf.String())
}

func TestEncodeResults(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeResults(&buf, ResultBatch{Results: []Result{
		{Valid: true, Name: "duo", Timestamp: []byte(`"2016-01-01T00:00:00Z"`), Principal: "bob", SourceIPV4: "1.2.3.4"},
		{Name: "duo"},
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[
		{"valid":true,"name":"duo","timestamp":"2016-01-01T00:00:00Z","principal":"bob","source_ipv4":"1.2.3.4"},
		{"valid":false,"name":"duo"}
	]}`, buf.String())
}

func TestRawEventAccessors(t *testing.T) {
	e := NewRawEvent([]byte(`{"details":{"actors":[{"login":"carol"}],"n":5,"s":"x"}}`))
	_, ok := e.Object("details")
	assert.True(t, ok)
	_, ok = e.Object("details.s")
	assert.False(t, ok)
	actors, ok := e.Array("details.actors")
	assert.True(t, ok)
	assert.Len(t, actors, 1)
	_, ok = e.Array("details.n")
	assert.False(t, ok)
	_, ok = e.String("details.n")
	assert.False(t, ok)
	_, ok = e.String("details.missing")
	assert.False(t, ok)

	var empty RawEvent
	assert.False(t, empty.Has("details"))
	b, err := empty.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
