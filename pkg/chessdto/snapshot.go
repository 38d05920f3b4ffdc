package chessdto

// GameSnapshot is the full state of one game as exchanged on create, join and reconnect.
//
// FEN carries placement and side to move. Captured lists FEN letters in capture order.
// MovedPawns lists squares ("e4") whose pawn has already moved; pawns off their home rank
// are treated as moved even when absent here.
type GameSnapshot struct {
	FEN        string   `json:"fen"`
	DrawOffer  string   `json:"draw_offer,omitempty"`
	Result     string   `json:"result,omitempty"`
	Captured   []string `json:"captured,omitempty"`
	MovedPawns []string `json:"moved_pawns,omitempty"`
}

// MoveDTO describes a move. From/To are algebraic squares. Flags and SAN are filled in by
// the server; values sent by clients are ignored.
type MoveDTO struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Piece     string `json:"piece,omitempty"`
	Capture   bool   `json:"capture,omitempty"`
	Check     bool   `json:"check,omitempty"`
	Checkmate bool   `json:"checkmate,omitempty"`
	SAN       string `json:"san,omitempty"`
}
