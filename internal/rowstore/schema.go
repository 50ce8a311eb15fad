package rowstore

// Schema DDL. Each record keeps its JSON body verbatim; seq preserves file
// order so a rewrite reproduces the original line order.
const (
	createRecords = `CREATE TABLE records (
    dataset TEXT NOT NULL,
    seq INTEGER NOT NULL,
    record_id TEXT NOT NULL,
    body TEXT NOT NULL,
    PRIMARY KEY (dataset, seq)
);`

	createRecordsIndex = `CREATE INDEX idx_records_id ON records (dataset, record_id);`
)

var schemaStatements = []string{createRecords, createRecordsIndex}
