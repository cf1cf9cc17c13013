package sqlite

import (
	"context"

	"github.com/telemost/accountd/internal/account/domain"
)

type trafficRepo struct {
	db dbtx
}

func (r *trafficRepo) SampleRandom(ctx context.Context, limit int) ([]domain.MobileTraffic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_0, id_a, id_b, start_time_local, time_zone, duration, forward,
		        zero_call_flg, source_b, source_f, num_b_length, time_key
		 FROM mobile_traffic ORDER BY RANDOM() LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.MobileTraffic, 0, limit)
	for rows.Next() {
		var t domain.MobileTraffic
		if err := rows.Scan(
			&t.ID0, &t.IDA, &t.IDB, &t.StartTimeLocal, &t.TimeZone, &t.Duration,
			&t.Forward, &t.ZeroCallFlg, &t.SourceB, &t.SourceF, &t.NumBLength, &t.TimeKey,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *trafficRepo) InsertTraffic(ctx context.Context, row domain.MobileTraffic) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mobile_traffic (id_0, id_a, id_b, start_time_local, time_zone, duration,
		                             forward, zero_call_flg, source_b, source_f, num_b_length, time_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID0, row.IDA, row.IDB, row.StartTimeLocal, row.TimeZone, row.Duration,
		row.Forward, row.ZeroCallFlg, row.SourceB, row.SourceF, row.NumBLength, row.TimeKey)
	return mapConstraint(err)
}
