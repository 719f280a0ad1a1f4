package store

import (
	"context"
	"fmt"

	"github.com/kuzudb/go-kuzu"
	"go.uber.org/zap"
)

// KuzuDatabase implements GraphDatabase on an embedded Kuzu database
type KuzuDatabase struct {
	db     *kuzu.Database
	conn   *kuzu.Connection
	logger *zap.Logger
}

// NewKuzuDatabase opens a Kuzu database and creates the run schema.
// An empty path or ":memory:" opens an in-memory database.
func NewKuzuDatabase(databasePath string, logger *zap.Logger) (*KuzuDatabase, error) {
	var db *kuzu.Database
	var err error

	if databasePath == ":memory:" || databasePath == "" {
		db, err = kuzu.OpenInMemoryDatabase(kuzu.DefaultSystemConfig())
	} else {
		db, err = kuzu.OpenDatabase(databasePath, kuzu.DefaultSystemConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Kuzu database: %w", err)
	}

	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create Kuzu connection: %w", err)
	}

	kuzuDB := &KuzuDatabase{
		db:     db,
		conn:   conn,
		logger: logger,
	}

	if err := kuzuDB.initializeSchema(); err != nil {
		kuzuDB.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize Kuzu schema: %w", err)
	}

	return kuzuDB, nil
}

// VerifyConnectivity checks if the database connection is working
func (db *KuzuDatabase) VerifyConnectivity(ctx context.Context) error {
	result, err := db.conn.Query("RETURN 1")
	if err != nil {
		return fmt.Errorf("failed to verify Kuzu connectivity: %w", err)
	}
	result.Close()
	return nil
}

func (db *KuzuDatabase) Close(ctx context.Context) error {
	if db.conn != nil {
		db.conn.Close()
		db.conn = nil
	}
	if db.db != nil {
		db.db.Close()
		db.db = nil
	}
	return nil
}

func (db *KuzuDatabase) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return db.executeQuery(ctx, query, params, false)
}

func (db *KuzuDatabase) ExecuteWrite(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return db.executeQuery(ctx, query, params, true)
}

func (db *KuzuDatabase) executeQuery(ctx context.Context, query string, params map[string]any, isWrite bool) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result *kuzu.QueryResult
	var err error

	if len(params) > 0 {
		preparedStatement, err := db.conn.Prepare(query)
		if err != nil {
			db.logger.Error("Failed to prepare Kuzu query",
				zap.String("query", query),
				zap.Bool("isWrite", isWrite),
				zap.Error(err))
			return nil, fmt.Errorf("failed to prepare query: %w", err)
		}
		defer preparedStatement.Close()

		result, err = db.conn.Execute(preparedStatement, params)
		if err != nil {
			return nil, db.queryFailed(query, isWrite, err)
		}
	} else {
		result, err = db.conn.Query(query)
		if err != nil {
			return nil, db.queryFailed(query, isWrite, err)
		}
	}
	defer result.Close()

	records := make([]map[string]any, 0)
	for result.HasNext() {
		tuple, err := result.Next()
		if err != nil {
			db.logger.Error("Failed to get next result row", zap.Error(err))
			return nil, fmt.Errorf("failed to get next result row: %w", err)
		}

		record, err := tuple.GetAsMap()
		if err != nil {
			db.logger.Error("Failed to convert tuple to map", zap.Error(err))
			return nil, fmt.Errorf("failed to convert tuple to map: %w", err)
		}

		converted := make(map[string]any, len(record))
		for key, value := range record {
			if node, ok := value.(kuzu.Node); ok {
				converted[key] = node.Properties
				continue
			}
			converted[key] = value
		}
		records = append(records, converted)
	}

	return records, nil
}

func (db *KuzuDatabase) queryFailed(query string, isWrite bool, err error) error {
	db.logger.Error("Failed to execute Kuzu query",
		zap.String("query", query),
		zap.Bool("isWrite", isWrite),
		zap.Error(err))
	return fmt.Errorf("failed to execute query: %w", err)
}

// initializeSchema creates the run, method and relationship tables
func (db *KuzuDatabase) initializeSchema() error {
	schemas := []string{
		`CREATE NODE TABLE IF NOT EXISTS ScanRun (
			id STRING,
			source STRING,
			created_at STRING,
			total_methods INT64,
			smelly_methods INT64,
			long_method_threshold INT64,
			long_parameter_threshold INT64,
			PRIMARY KEY (id)
		)`,
		`CREATE NODE TABLE IF NOT EXISTS Method (
			id STRING,
			name STRING,
			file_path STRING,
			language STRING,
			start_line INT64,
			end_line INT64,
			parameter_count INT64,
			effective_lines INT64,
			smells STRING,
			PRIMARY KEY (id)
		)`,
		`CREATE REL TABLE IF NOT EXISTS HAS_METHOD (FROM ScanRun TO Method)`,
	}

	for _, schema := range schemas {
		result, err := db.conn.Query(schema)
		if err != nil {
			db.logger.Error("Failed to create table", zap.String("schema", schema), zap.Error(err))
			return fmt.Errorf("failed to create table: %w", err)
		}
		result.Close()
	}

	db.logger.Debug("Initialized Kuzu schema")
	return nil
}
