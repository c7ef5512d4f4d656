// Package zoominfo provides a client for the ZoomInfo Enterprise API:
// https://api-docs.zoominfo.com/
//
// Features:
// - Username/password and PKI (client assertion) authentication with a cached JWT.
// - Contact and company search with typed fields plus free-form extra filters.
package zoominfo
