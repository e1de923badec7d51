package taiga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetProject(t *testing.T) {
	h := &scriptedHTTP{responses: []scriptedResponse{
		{status: 200, body: `{"id": 31, "name": "Backend", "slug": "backend", "description": "The API service"}`},
	}}
	client := newTestClient(h, nil)

	project, err := client.GetProject(context.Background(), 31)

	require.NoError(t, err)
	assert.Equal(t, 31, project.ID)
	assert.Equal(t, "The API service", project.Description)
	require.Len(t, h.requests, 1)
	assert.Equal(t, "/api/v1/projects/31", h.requests[0].path)
}

func TestClient_ListEpics(t *testing.T) {
	h := &scriptedHTTP{responses: []scriptedResponse{
		{status: 200, body: `[
			{"id": 9, "ref": 90, "subject": "Payments revamp", "project": 31, "color": "#70728F"},
			{"id": 10, "ref": 91, "subject": "Onboarding", "project": 31}
		]`},
	}}
	client := newTestClient(h, nil)

	epics, err := client.ListEpics(context.Background(), 31)

	require.NoError(t, err)
	require.Len(t, epics, 2)
	assert.Equal(t, "Payments revamp", epics[0].Subject)
	assert.Equal(t, "#70728F", epics[0].Color)
	require.Len(t, h.requests, 1)
	assert.Equal(t, "/api/v1/epics", h.requests[0].path)
	assert.Equal(t, "project=31", h.requests[0].query)
}
