package domain

// MobileTraffic is one row of the read-mostly call-traffic table. The
// column names are inherited from the upstream data feed and are preserved
// verbatim in the JSON representation.
type MobileTraffic struct {
	ID0            int64  `json:"id_0"`
	IDA            int64  `json:"id_a"`
	IDB            int64  `json:"id_b"`
	StartTimeLocal string `json:"start_time_local"`
	TimeZone       int64  `json:"time_zone"`
	Duration       int64  `json:"duration"`
	Forward        int64  `json:"forward"`
	ZeroCallFlg    int64  `json:"zero_call_flg"`
	SourceB        int64  `json:"source_b"`
	SourceF        int64  `json:"source_f"`
	NumBLength     int64  `json:"num_b_length"`
	TimeKey        string `json:"time_key"`
}
