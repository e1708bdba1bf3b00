package handlers

// HandlerBundle groups every admin endpoint handler for route registration.
type HandlerBundle struct {
	Bookings  *BookingHandler
	Users     *UserHandler
	Workers   *WorkerHandler
	Hoardings *HoardingHandler
	Messages  *MessageHandler
	Hero      *HeroHandler
	Uploads   *UploadHandler
	Settings  *SettingsHandler
	Reports   *ReportHandler
}
