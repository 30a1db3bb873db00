package storage

//go:generate msgp -o event_gen.go -tests=false

// TileEvent announces a completed tile.
type TileEvent struct {
	JobID       string `json:"job" msg:"job"`
	Input       string `json:"input" msg:"input"`
	Output      string `json:"output" msg:"output"`
	Split       int    `json:"split" msg:"split"`
	TotalSplits int    `json:"totalSplits" msg:"totalSplits"`
	Index       []int  `json:"index" msg:"index"`
	Size        []int  `json:"size" msg:"size"`
	ShrunkSize  []int  `json:"shrunkSize" msg:"shrunkSize"`
	Label       bool   `json:"label" msg:"label"`
	ElapsedMs   int64  `json:"elapsedMs" msg:"elapsedMs"`
}
