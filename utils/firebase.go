// utils/firebase.go
package utils

import (
	"context"
	"log"

	"shiffy/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Without a
// credentials path push notifications stay disabled.
func FirebaseInit() {
	path := config.AppConfig.FirebaseCredentialsPath
	if path == "" {
		GetLogger().Warn("firebase: FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
