package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	before := time.Now().UnixMilli()
	response := NewResponse(http.StatusNotFound, nil, "unknown stop")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Nil(t, response.Data)
	assert.Equal(t, "unknown stop", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewEntryResponse(t *testing.T) {
	entry := map[string]string{"name": "Fiction Tram"}

	response := NewEntryResponse(entry)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, entry, data["entry"])
}

func TestNewListResponse(t *testing.T) {
	list := []string{"Fiction Tram", "Fiction Bus"}

	response := NewListResponse(list)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, list, data["list"])
	assert.Equal(t, false, data["limitExceeded"])
}

func TestResponseModelJSON(t *testing.T) {
	response := ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: 1746324484528,
		Data:        map[string]string{"test": "data"},
		Text:        "OK",
		Version:     2,
	}

	jsonData, err := json.Marshal(response)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"code":200,"currentTime":1746324484528,"data":{"test":"data"},"text":"OK","version":2}`,
		string(jsonData))
}

func TestNewCurrentTime(t *testing.T) {
	now := time.Date(2025, 5, 3, 12, 0, 0, 0, time.UTC)

	model := NewCurrentTime(now)

	assert.Equal(t, "2025-05-03T12:00:00Z", model.ReadableTime)
	assert.Equal(t, now.UnixMilli(), model.Time)
	assert.Equal(t, "UTC", model.TimeZone)
}
