// Package config provides the settings of the campaign server and CLI.
//
// Settings are read from environment variables (a .env file is loaded by the
// binaries first). Command-line flags override individual values.
//
// Variables:
//   - CAMPAIGN_HOST, CAMPAIGN_PORT: HTTP listen address
//   - CAMPAIGN_DATA_DIR, CAMPAIGN_FILE: where the campaign is stored
//   - CAMPAIGN_STORE: "file" (pretty JSON) or "badger"
//   - CAMPAIGN_WATCH: reload the campaign file after external edits
//   - REFERENCE_DIR: directory of monster datasets overriding the embedded ones
//   - CAMPAIGN_DEBUG: debug logging
//   - NGROK_ENABLED, NGROK_AUTHTOKEN, NGROK_DOMAIN: optional public tunnel
//
// Usage:
//
//	settings, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(settings.Addr(), settings.CampaignPath())
package config
