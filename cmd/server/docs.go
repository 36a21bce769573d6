// Package main LeagueHub Server API
//
//	@title						LeagueHub Server API
//	@version					1.0
//	@description				League membership API: invitation codes, team join requests and captain promotion.
//
//	@contact.name				LeagueHub Support
//	@contact.email				support@leaguehub.dev
//
//	@license.name				Proprietary
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					InvitationCodes
//	@tag.description			Invitation code generation and redemption
//
//	@tag.name					JoinRequests
//	@tag.description			Team recruitment and join requests
//
//	@tag.name					CaptainRequests
//	@tag.description			Captain promotion workflow
package main
