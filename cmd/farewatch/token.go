package main

import (
	"fmt"
	"net/http"

	"farewatch-service/internal/infrastructure/oauth"
	"farewatch-service/pkg/logger"

	"github.com/spf13/cobra"
)

// tokenCmd obtains the Gmail refresh token needed for report delivery. It
// runs a one-shot local callback server for the OAuth consent flow.
func tokenCmd() *cobra.Command {
	var clientID, clientSecret, port string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain a Gmail refresh token for report delivery",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger("info")
			defer log.Sync()

			gmailOAuth := oauth.NewGmailOAuth(clientID, clientSecret, "", log)
			redirectURL := fmt.Sprintf("http://localhost:%s/oauth2callback", port)
			state := "farewatch-token"

			done := make(chan error, 1)
			mux := http.NewServeMux()
			server := &http.Server{Addr: ":" + port, Handler: mux}

			mux.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("state") != state {
					http.Error(w, "Invalid state parameter", http.StatusBadRequest)
					done <- fmt.Errorf("oauth callback carried an invalid state")
					return
				}

				token, err := gmailOAuth.ExchangeCode(r.Context(), r.URL.Query().Get("code"), redirectURL)
				if err != nil {
					http.Error(w, fmt.Sprintf("Failed to exchange code: %v", err), http.StatusInternalServerError)
					done <- err
					return
				}

				fmt.Printf("\nGMAIL_REFRESH_TOKEN=%s\n\n", token.RefreshToken)
				fmt.Fprint(w, "Authentication successful! You can close this window.")
				done <- nil
			})

			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					done <- err
				}
			}()

			fmt.Printf("Open this URL in your browser:\n%s\n", gmailOAuth.GenerateAuthURL(redirectURL, state))

			err := <-done
			server.Close()
			return err
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Google OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Google OAuth client secret")
	cmd.Flags().StringVar(&port, "port", "8090", "local callback port")
	cmd.MarkFlagRequired("client-id")
	cmd.MarkFlagRequired("client-secret")
	return cmd
}
