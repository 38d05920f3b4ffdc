package chessdto

// Kind names a wire message. Each WebSocket text frame carries exactly one Message.
type Kind string

const (
	KindToken      Kind = "token"
	KindGameCreate Kind = "game_create"
	KindGameJoin   Kind = "game_join"
	KindPieceMove  Kind = "piece_move"
	KindChat       Kind = "chat"
	KindSurrender  Kind = "surrender"
	KindDrawOffer  Kind = "draw_offer"
	KindGameEnd    Kind = "game_end"
)

// Message is the envelope for every client/server exchange. Only the fields relevant to
// Kind are set.
type Message struct {
	Kind     Kind          `json:"kind"`
	Token    string        `json:"token,omitempty"`
	Game     *GameSnapshot `json:"game,omitempty"`
	GameID   string        `json:"game_id,omitempty"`
	Color    string        `json:"color,omitempty"`
	Nickname string        `json:"nickname,omitempty"`
	Move     *MoveDTO      `json:"move,omitempty"`
	Text     string        `json:"text,omitempty"`
	Result   string        `json:"result,omitempty"`
}

// ServerNickname is the sender shown on notices produced by the server itself.
const ServerNickname = "Server"

func TokenMessage(token string) Message {
	return Message{Kind: KindToken, Token: token}
}

// GameStateMessage carries a full snapshot plus the recipient's color.
func GameStateMessage(id, color string, snap GameSnapshot) Message {
	return Message{Kind: KindGameCreate, GameID: id, Color: color, Game: &snap}
}

func MoveMessage(mv MoveDTO) Message {
	return Message{Kind: KindPieceMove, Move: &mv}
}

func ChatMessage(nickname, text string) Message {
	return Message{Kind: KindChat, Nickname: nickname, Text: text}
}

// NoticeMessage is a chat line from the server.
func NoticeMessage(text string) Message {
	return ChatMessage(ServerNickname, text)
}

func GameEndMessage(result string) Message {
	return Message{Kind: KindGameEnd, Result: result}
}
