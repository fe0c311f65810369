package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender. Empty means "Markup".
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays up. Zero leaves it to
	// the platform.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Markup"
	}
	return o.AppName
}
