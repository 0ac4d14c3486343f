// Package timezone pins wall clock times to the zone named by APP_TIMEZONE
// (an IANA name, UTC when unset or unknown). The zone is loaded once at import.
//
// Booking dates are calendar dates and never pass through the app zone:
// ParseDate and FormatDate work on midnight UTC values so they line up with
// DATE columns, while Now, Parse and Format use the configured zone.
package timezone
