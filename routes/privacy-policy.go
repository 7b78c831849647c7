package routes

import (
	"fmt"
	"net/http"
)

// PrivacyPolicyHandler serves the Privacy Policy content
func PrivacyPolicyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html := `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>CupidWave Privacy Policy</title>
	</head>
	<body>
		<h1>Privacy Policy</h1>
		<p>CupidWave stores the profile, photos, location and messages you share so other members can meet you.</p>
		<p>Your approximate distance is shown to other members; your exact coordinates never are.</p>
		<p>Payments are processed by Stripe. We keep the purchase status, never your card details.</p>
		<p>Deleting your profile removes it from browse, Tornado and suggestions.</p>
		<p>Contact us at <a href="mailto:privacy@cupidwave.app">privacy@cupidwave.app</a> for questions.</p>
	</body>
	</html>
	`
	fmt.Fprint(w, html)
}
