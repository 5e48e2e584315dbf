package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedVehicle struct {
	ID    uint   `gorm:"primaryKey"`
	Label string `gorm:"size:100"`
}

func setupTracedDB(t *testing.T, cfg DBTracingConfig) (*gorm.DB, *tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedVehicle{}))

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	cfg.TracerProvider = tp
	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))
	return db, recorder, tp
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db, recorder, _ := setupTracedDB(t, DBTracingConfig{Enabled: false})
	require.NoError(t, db.Create(&tracedVehicle{Label: "2019 Ford F-150"}).Error)
	assert.Empty(t, recorder.Ended())
}

func TestDBTracingPlugin_RecordsSpans(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	db, recorder, tp := setupTracedDB(t, cfg)

	ctx, parent := tp.Tracer("test").Start(context.Background(), "request")
	require.NoError(t, db.WithContext(ctx).Create(&tracedVehicle{Label: "2018 Honda Civic"}).Error)
	var got []tracedVehicle
	require.NoError(t, db.WithContext(ctx).Find(&got).Error)
	parent.End()

	ended := recorder.Ended()
	require.GreaterOrEqual(t, len(ended), 3)

	var sawTable bool
	for _, s := range ended {
		for _, kv := range s.Attributes() {
			if kv == attribute.String("db.sql.table", "traced_vehicles") {
				sawTable = true
			}
		}
	}
	assert.True(t, sawTable, "db spans should carry the table name")
}

func TestDBTracingPlugin_MarksSlowQueries(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.SlowQueryThresh = time.Nanosecond
	db, recorder, tp := setupTracedDB(t, cfg)

	ctx, parent := tp.Tracer("test").Start(context.Background(), "request")
	var got []tracedVehicle
	require.NoError(t, db.WithContext(ctx).Find(&got).Error)
	parent.End()

	var slow bool
	for _, s := range recorder.Ended() {
		if s.Name() != "gorm.Query" {
			continue
		}
		for _, kv := range s.Attributes() {
			if kv.Key == "db.slow_query" && kv.Value.AsBool() {
				slow = true
			}
		}
	}
	assert.True(t, slow, "the query span should be flagged as slow")
}

func TestDBTracingPlugin_FastQueriesAreNotFlagged(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.SlowQueryThresh = time.Hour
	db, recorder, tp := setupTracedDB(t, cfg)

	ctx, parent := tp.Tracer("test").Start(context.Background(), "request")
	var got []tracedVehicle
	require.NoError(t, db.WithContext(ctx).Find(&got).Error)
	parent.End()

	for _, s := range recorder.Ended() {
		for _, kv := range s.Attributes() {
			assert.NotEqual(t, attribute.Key("db.slow_query"), kv.Key, s.Name())
		}
	}
}
