package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- extractions: one row per single-recipe preview produced by the CLI
CREATE TABLE IF NOT EXISTS extractions (
    extraction_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    domain TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    ingredients_count INTEGER NOT NULL DEFAULT 0,
    prep_time_min INTEGER NOT NULL DEFAULT 0,
    cook_time_min INTEGER NOT NULL DEFAULT 0,
    total_time_min INTEGER NOT NULL DEFAULT 0,
    servings INTEGER NOT NULL DEFAULT 0,
    image_url TEXT,
    recipe_type TEXT,
    language TEXT,
    confidence INTEGER NOT NULL DEFAULT 0,
    tier TEXT,                -- acquisition tier: service, raw_fetch, stub
    degraded BOOLEAN DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_extractions_domain ON extractions(domain);
CREATE INDEX IF NOT EXISTS idx_extractions_confidence ON extractions(confidence);
CREATE INDEX IF NOT EXISTS idx_extractions_created ON extractions(created_at);

-- detections: one row per multi-recipe scan
CREATE TABLE IF NOT EXISTS detections (
    detection_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    domain TEXT NOT NULL,
    is_multiple BOOLEAN NOT NULL DEFAULT 0,
    candidate_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_detections_domain ON detections(domain);

-- candidates: the stubs found by a detection run
CREATE TABLE IF NOT EXISTS candidates (
    candidate_id INTEGER PRIMARY KEY AUTOINCREMENT,
    detection_id INTEGER NOT NULL,
    stub_id TEXT NOT NULL,
    title TEXT NOT NULL,
    difficulty TEXT,
    cook_time_min INTEGER NOT NULL DEFAULT 0,
    servings INTEGER NOT NULL DEFAULT 0,
    ingredients_count INTEGER NOT NULL DEFAULT 0,
    category TEXT,
    image_url TEXT,
    FOREIGN KEY (detection_id) REFERENCES detections(detection_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_candidates_detection ON candidates(detection_id);
`
