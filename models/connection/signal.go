package connection

const (
	CodeRegister uint8 = iota
	CodeLogin

	// Win table: ordered {name, wins} descending by wins
	CodeUpdateWinners

	CodeCreateRoom
	CodeJoinRoom
	CodeUpdateRooms

	// Sent to both members once their room fills up
	CodeCreateGame

	CodePlaceShips
	CodeStartGame
	CodeAttack
	CodeTurn
	CodeFinishGame

	// Accepted on the wire, answered with a not-implemented error
	CodeRandomAttack

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
