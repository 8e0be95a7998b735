package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite defines a test suite for logger functions
type LoggerTestSuite struct {
	suite.Suite
	buffer *bytes.Buffer
}

func (suite *LoggerTestSuite) SetupTest() {
	suite.buffer = &bytes.Buffer{}
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) lastJSONEntry() map[string]interface{} {
	lines := strings.Split(strings.TrimSpace(suite.buffer.String()), "\n")
	require.NotEmpty(suite.T(), lines)
	var entry map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func (suite *LoggerTestSuite) TestNewLoggerReturnsLogrusLogger() {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		log := NewLogger(level, "json")
		assert.IsType(suite.T(), &LogrusLogger{}, log, level)
	}
}

func (suite *LoggerTestSuite) TestJSONFormat() {
	log := NewLoggerWithOutput("info", "json", suite.buffer)
	log.Infof("session %s created", "abc")

	entry := suite.lastJSONEntry()
	assert.Equal(suite.T(), "info", entry["level"])
	assert.Equal(suite.T(), "session abc created", entry["msg"])
	assert.Contains(suite.T(), entry, "time")
}

func (suite *LoggerTestSuite) TestTextFormat() {
	log := NewLoggerWithOutput("info", "text", suite.buffer)
	log.Warn("backend slow")

	out := suite.buffer.String()
	assert.Contains(suite.T(), out, "level=warning")
	assert.Contains(suite.T(), out, "backend slow")
}

func (suite *LoggerTestSuite) TestLevelFiltering() {
	log := NewLoggerWithOutput("warn", "json", suite.buffer)
	log.Debug("hidden")
	log.Info("hidden too")
	assert.Empty(suite.T(), suite.buffer.String())

	log.Errorf("visible %d", 1)
	assert.Equal(suite.T(), "visible 1", suite.lastJSONEntry()["msg"])
}

func (suite *LoggerTestSuite) TestUnknownLevelDefaultsToInfo() {
	log := NewLoggerWithOutput("verbose", "json", suite.buffer)
	log.Debug("hidden")
	assert.Empty(suite.T(), suite.buffer.String())
	log.Info("shown")
	assert.NotEmpty(suite.T(), suite.buffer.String())
}

func (suite *LoggerTestSuite) TestWithFields() {
	log := NewLoggerWithOutput("info", "json", suite.buffer)
	scoped := log.WithFields(Fields{"session_id": "s-1", "status": 200})
	scoped.Info("request completed")

	entry := suite.lastJSONEntry()
	assert.Equal(suite.T(), "s-1", entry["session_id"])
	assert.Equal(suite.T(), float64(200), entry["status"])

	// the parent logger is not affected
	suite.buffer.Reset()
	log.Info("plain")
	assert.NotContains(suite.T(), suite.lastJSONEntry(), "session_id")
}
