package repository

const (
	upsertSummaryQuery = `INSERT INTO video_summaries (video_id, payload, created_at)
					VALUES ($1, $2, $3)
					ON CONFLICT (video_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	getSummaryQuery   = `SELECT payload FROM video_summaries WHERE video_id = $1`
	listSummaryQuery  = `SELECT video_id, payload FROM video_summaries ORDER BY created_at DESC`
	upsertLabelsQuery = `INSERT INTO video_annotations (video_id, payload)
					VALUES ($1, $2)
					ON CONFLICT (video_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	getLabelsQuery = `SELECT payload FROM video_annotations WHERE video_id = $1`
)
