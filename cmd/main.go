package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/saeidalz13/seabattle-backend/api"
	"github.com/saeidalz13/seabattle-backend/db"
	"github.com/saeidalz13/seabattle-backend/db/sqlc"
	mc "github.com/saeidalz13/seabattle-backend/models/connection"
	mb "github.com/saeidalz13/seabattle-backend/models/seabattle"
)

const defaultFrontDir = "./front"

func main() {
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != "dev" && stage != "prod" {
		panic("stage must be either dev or prod")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	psqlUrl := os.Getenv("DATABASE_URL")
	psqlDb := db.MustConnectToDb(psqlUrl)
	dbManager := sqlc.NewDbManager(sqlc.New(psqlDb))

	sessionManager := mc.NewSessionManager()
	roomManager := mb.NewRoomManager()
	gameManager := mb.NewGameManager(dbManager.Players)

	go sessionManager.CleanupPeriodically()

	rp := api.NewRequestProcessor(sessionManager, roomManager, gameManager, dbManager)

	frontDir := os.Getenv("FRONT_DIR")
	if frontDir == "" {
		frontDir = defaultFrontDir
	}

	mux := http.NewServeMux()
	mux.Handle("GET /seabattle", rp)
	mux.Handle("/", http.FileServer(http.Dir(frontDir)))

	log.Printf("Listening to port %s\n", port)
	log.Fatalln(http.ListenAndServe("0.0.0.0:"+port, mux))
}
