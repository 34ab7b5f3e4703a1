package catalog

// schemaSQL is the DDL for the build catalog.
const schemaSQL = `
-- One row per corpus file seen by a build, indexed or not
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY,
    build_id INTEGER NOT NULL REFERENCES build_runs(id) ON DELETE CASCADE,
    path TEXT NOT NULL,
    url TEXT,
    doc_id INTEGER,
    status TEXT NOT NULL,
    token_count INTEGER DEFAULT 0,
    checksum INTEGER,
    fingerprint TEXT,
    size_bytes INTEGER,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per build invocation
CREATE TABLE IF NOT EXISTS build_runs (
    id INTEGER PRIMARY KEY,
    corpus_dir TEXT NOT NULL,
    status TEXT DEFAULT 'running',
    started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    finished_at DATETIME,
    docs_processed INTEGER DEFAULT 0,
    docs_indexed INTEGER DEFAULT 0,
    unique_tokens INTEGER DEFAULT 0,
    spills INTEGER DEFAULT 0
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_documents_build ON documents(build_id);
CREATE INDEX IF NOT EXISTS idx_documents_doc_id ON documents(doc_id);
`
