// Package ecode defines the business error codes carried in API response
// envelopes, with human-readable text for each.
//
// Codes follow the usual convention: 0 is success, negative values are
// errors grouped by area (request, resource, server).
//
//	ecode.OK               // 0: success
//	ecode.RequestErr       // -400: invalid request
//	ecode.NothingFound     // -404: resource not found
//	ecode.ServerErr        // -500: internal error
//
// Text resolves a code to its message:
//
//	resp.Fail(w, &resp.Exception{Code: ecode.ServerErr,
//	    Message: ecode.Text(ecode.ServerErr)})
package ecode
