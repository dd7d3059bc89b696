package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/seabattle-backend/db/sqlc"
	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mc "github.com/saeidalz13/seabattle-backend/models/connection"
	mb "github.com/saeidalz13/seabattle-backend/models/seabattle"
)

var upgrader = websocket.Upgrader{

	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// probably more than enough but this is a good average size
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RequestProcessor routes the commands of one websocket session to the
// room and game registries and fans the resulting events back out to
// the affected sessions.
type RequestProcessor struct {
	sessionManager *mc.SessionManager
	roomManager    *mb.RoomManager
	gameManager    *mb.GameManager
	dbManager      sqlc.DbManager
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager *mc.SessionManager,
	roomManager *mb.RoomManager,
	gameManager *mb.GameManager,
	dbManager sqlc.DbManager,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		roomManager:    roomManager,
		gameManager:    gameManager,
		dbManager:      dbManager,
	}

	rp = rp.mustGetServerIpNet()
	return rp
}

func (rp RequestProcessor) mustGetServerIpNet() RequestProcessor {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				rp.ipnet = *ipnet
				return rp
			}
		}
	}

	panic("ipnet could not be found!")
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var sessionPlayer *mb.PlayerRef
	sessionId := session.Id()

	defer func() {
		rp.forfeitAbandonedGame(sessionId)
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

sessionLoop:
	for {
		payload, err := rp.sessionManager.ReadFromSession(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "validation failed")
			if err = rp.sessionManager.WriteToSession(sessionId, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		// Both branches bind a player identity to this session; the
		// response and the win-table push are identical for the two
		case mc.CodeRegister, mc.CodeLogin:
			sessionPlayer = rp.handleAuth(sessionId, signal.Code, payload)

		case mc.CodeCreateRoom:
			rp.handleCreateRoom(sessionId, sessionPlayer)

		case mc.CodeJoinRoom:
			rp.handleJoinRoom(sessionId, sessionPlayer, payload)

		case mc.CodePlaceShips:
			rp.handlePlaceShips(sessionId, payload)

		case mc.CodeAttack:
			rp.handleAttack(sessionId, payload)

		case mc.CodeRandomAttack:
			rp.writeErr(sessionId, mc.CodeRandomAttack, cerr.ErrRandomAttackNotImplemented())

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSession(sessionId, respInvalidSignal); err != nil {
				break sessionLoop
			}
		}
	}
}

// writeErr echoes a failure back to the offending sender only. No
// other session hears about it and no shared state was mutated.
func (rp RequestProcessor) writeErr(sessionId string, code uint8, err error) {
	msg := mc.NewMessage[mc.NoPayload](code)
	msg.AddError(err.Error(), errCategory(err))
	if werr := rp.sessionManager.WriteToSession(sessionId, msg); werr != nil {
		log.Printf("failed to write error to session %s: %v", sessionId, werr)
	}
}

func errCategory(err error) string {
	switch {
	case errors.Is(err, cerr.ErrNotFound):
		return "not found"
	case errors.Is(err, cerr.ErrConflict):
		return "conflict"
	case errors.Is(err, cerr.ErrValidation):
		return "validation failed"
	default:
		return "internal error"
	}
}

func (rp RequestProcessor) handleAuth(sessionId string, code uint8, payload []byte) *mb.PlayerRef {
	var req mc.Message[mc.ReqRegister]
	if err := json.Unmarshal(payload, &req); err != nil {
		rp.writeErr(sessionId, code, cerr.ErrMalformedPayload())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	var player sqlc.Player
	var err error
	if code == mc.CodeRegister {
		player, err = rp.dbManager.Players.Register(ctx, req.Payload.Name, req.Payload.Password)
	} else {
		player, err = rp.dbManager.Players.Authenticate(ctx, req.Payload.Name, req.Payload.Password)
	}
	if err != nil {
		rp.writeErr(sessionId, code, err)
		return nil
	}

	resp := mc.NewMessage[mc.RespRegister](code)
	resp.AddPayload(mc.RespRegister{Name: player.Name, Index: int(player.PlayerIndex)})
	if err := rp.sessionManager.WriteToSession(sessionId, resp); err != nil {
		log.Printf("failed to write auth response to session %s: %v", sessionId, err)
		return nil
	}

	rp.sendWinnersTo(sessionId)
	return &mb.PlayerRef{Name: player.Name, Index: int(player.PlayerIndex)}
}

// handleCreateRoom allocates a room and seats its creator in it right
// away, then refreshes the joinable list for the whole lobby.
func (rp RequestProcessor) handleCreateRoom(sessionId string, player *mb.PlayerRef) {
	if player == nil {
		rp.writeErr(sessionId, mc.CodeCreateRoom, cerr.ErrPlayerNotLoggedIn())
		return
	}

	roomId := rp.roomManager.CreateRoom()
	if _, _, err := rp.roomManager.JoinRoom(roomId, mb.RoomMember{Player: *player, SessionId: sessionId}); err != nil {
		rp.writeErr(sessionId, mc.CodeCreateRoom, err)
		return
	}

	resp := mc.NewMessage[mc.RespCreateRoom](mc.CodeCreateRoom)
	resp.AddPayload(mc.RespCreateRoom{RoomId: roomId})
	if err := rp.sessionManager.WriteToSession(sessionId, resp); err != nil {
		log.Printf("failed to write create room response to session %s: %v", sessionId, err)
	}

	rp.broadcastRooms()
}

func (rp RequestProcessor) handleJoinRoom(sessionId string, player *mb.PlayerRef, payload []byte) {
	if player == nil {
		rp.writeErr(sessionId, mc.CodeJoinRoom, cerr.ErrPlayerNotLoggedIn())
		return
	}

	var req mc.Message[mc.ReqJoinRoom]
	if err := json.Unmarshal(payload, &req); err != nil {
		rp.writeErr(sessionId, mc.CodeJoinRoom, cerr.ErrMalformedPayload())
		return
	}

	room, full, err := rp.roomManager.JoinRoom(req.Payload.RoomId, mb.RoomMember{Player: *player, SessionId: sessionId})
	if err != nil {
		rp.writeErr(sessionId, mc.CodeJoinRoom, err)
		return
	}

	rp.broadcastRooms()

	if !full {
		return
	}

	game, err := rp.gameManager.CreateGame(room)
	if err != nil {
		rp.writeErr(sessionId, mc.CodeJoinRoom, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	if err := rp.dbManager.Analytics.IncrementGamesCreatedCount(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		// for now not killing the game for it
		log.Println(err)
	}
	cancel()

	for idx, sid := range game.SessionIds() {
		resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
		resp.AddPayload(mc.RespCreateGame{GameId: game.Id(), YourIndex: idx})
		if err := rp.sessionManager.WriteToSession(sid, resp); err != nil {
			log.Printf("failed to notify session %s of game %d: %v", sid, game.Id(), err)
		}
	}
}

func (rp RequestProcessor) handlePlaceShips(sessionId string, payload []byte) {
	var req mc.Message[mc.ReqPlaceShips]
	if err := json.Unmarshal(payload, &req); err != nil {
		rp.writeErr(sessionId, mc.CodePlaceShips, cerr.ErrMalformedPayload())
		return
	}

	game, err := rp.gameManager.GetGame(req.Payload.GameId)
	if err != nil {
		rp.writeErr(sessionId, mc.CodePlaceShips, err)
		return
	}

	started, err := game.PlaceShips(req.Payload.PlayerIndex, req.Payload.Ships)
	if err != nil {
		rp.writeErr(sessionId, mc.CodePlaceShips, err)
		return
	}

	ack := mc.NewMessage[mc.NoPayload](mc.CodePlaceShips)
	if err := rp.sessionManager.WriteToSession(sessionId, ack); err != nil {
		log.Printf("failed to ack placement to session %s: %v", sessionId, err)
	}

	if !started {
		return
	}

	// Both slots are ready; each player gets their own ship list and
	// the index of whoever holds the first turn
	for idx, sid := range game.SessionIds() {
		resp := mc.NewMessage[mc.RespStartGame](mc.CodeStartGame)
		resp.AddPayload(mc.RespStartGame{Ships: game.ShipsOf(idx), CurrentTurn: game.TurnIndex()})
		if err := rp.sessionManager.WriteToSession(sid, resp); err != nil {
			log.Printf("failed to send start to session %s: %v", sid, err)
		}
	}
}

func (rp RequestProcessor) handleAttack(sessionId string, payload []byte) {
	var req mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(payload, &req); err != nil {
		rp.writeErr(sessionId, mc.CodeAttack, cerr.ErrMalformedPayload())
		return
	}

	game, err := rp.gameManager.GetGame(req.Payload.GameId)
	if err != nil {
		rp.writeErr(sessionId, mc.CodeAttack, err)
		return
	}

	result, err := game.Attack(req.Payload.PlayerIndex, req.Payload.X, req.Payload.Y)
	if err != nil {
		rp.writeErr(sessionId, mc.CodeAttack, err)
		return
	}

	sids := game.SessionIds()

	rp.writeAttackResult(sids, mc.RespAttack{
		X:             result.X,
		Y:             result.Y,
		AttackerIndex: result.AttackerIndex,
		Status:        result.Status,
	})

	// The flood of misses around a sunken ship is replayed to both
	// clients so they can render the swept cells
	for _, c := range result.Sweep {
		rp.writeAttackResult(sids, mc.RespAttack{
			X:             c.X,
			Y:             c.Y,
			AttackerIndex: result.AttackerIndex,
			Status:        mb.AttackStatusMiss,
		})
	}

	if result.Finished {
		rp.finishAndAnnounce(game.Id(), result.AttackerIndex, sids)
		return
	}

	if result.TurnChanged {
		for _, sid := range sids {
			resp := mc.NewMessage[mc.RespTurn](mc.CodeTurn)
			resp.AddPayload(mc.RespTurn{CurrentTurn: result.TurnIndex})
			if err := rp.sessionManager.WriteToSession(sid, resp); err != nil {
				log.Printf("failed to send turn notice to session %s: %v", sid, err)
			}
		}
	}
}

func (rp RequestProcessor) writeAttackResult(sids [2]string, result mc.RespAttack) {
	for _, sid := range sids {
		resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
		resp.AddPayload(result)
		if err := rp.sessionManager.WriteToSession(sid, resp); err != nil {
			log.Printf("failed to send attack result to session %s: %v", sid, err)
		}
	}
}

// finishAndAnnounce runs the finish sequence once: win counter, finish
// event to both members, fresh win table to the whole lobby. A second
// call for the same game finds it already gone and does nothing.
func (rp RequestProcessor) finishAndAnnounce(gameId, winnerIdx int, sids [2]string) {
	if _, ok := rp.gameManager.FinishGame(gameId, winnerIdx); !ok {
		return
	}

	for _, sid := range sids {
		resp := mc.NewMessage[mc.RespFinishGame](mc.CodeFinishGame)
		resp.AddPayload(mc.RespFinishGame{Winner: winnerIdx})
		if err := rp.sessionManager.WriteToSession(sid, resp); err != nil {
			log.Printf("failed to send finish to session %s: %v", sid, err)
		}
	}

	rp.broadcastWinners()
}

// forfeitAbandonedGame hands the win to the remaining player when a
// session drops in the middle of an unfinished game.
func (rp RequestProcessor) forfeitAbandonedGame(sessionId string) {
	game, idx := rp.gameManager.FindGameBySession(sessionId)
	if game == nil {
		return
	}
	rp.finishAndAnnounce(game.Id(), 1-idx, game.SessionIds())
}

func (rp RequestProcessor) broadcastRooms() {
	resp := mc.NewMessage[mc.RespUpdateRooms](mc.CodeUpdateRooms)
	resp.AddPayload(mc.RespUpdateRooms{Rooms: rp.roomManager.ListJoinable()})
	rp.sessionManager.Broadcast(resp)
}

func (rp RequestProcessor) winnersMessage() (mc.Message[mc.RespUpdateWinners], error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	rows, err := rp.dbManager.Players.ListWinners(ctx)
	if err != nil {
		return mc.Message[mc.RespUpdateWinners]{}, err
	}

	winners := make([]mc.Winner, 0, len(rows))
	for _, row := range rows {
		winners = append(winners, mc.Winner{Name: row.Name, Wins: row.Wins})
	}

	resp := mc.NewMessage[mc.RespUpdateWinners](mc.CodeUpdateWinners)
	resp.AddPayload(mc.RespUpdateWinners{Winners: winners})
	return resp, nil
}

func (rp RequestProcessor) sendWinnersTo(sessionId string) {
	resp, err := rp.winnersMessage()
	if err != nil {
		log.Printf("failed to fetch winners: %v", err)
		return
	}
	if err := rp.sessionManager.WriteToSession(sessionId, resp); err != nil {
		log.Printf("failed to send winners to session %s: %v", sessionId, err)
	}
}

func (rp RequestProcessor) broadcastWinners() {
	resp, err := rp.winnersMessage()
	if err != nil {
		log.Printf("failed to fetch winners: %v", err)
		return
	}
	rp.sessionManager.Broadcast(resp)
}
