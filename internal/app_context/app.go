package appcontext

import (
	"github.com/SeakMengs/CourseCert/internal/auth"
	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// JWTService verifies bearer tokens issued to learners and staff.
	JWTService auth.JWTInterface

	// Publisher sends jobs and signals to the broker.
	Publisher queue.Publisher

	// Certificates holds the certificate rules shared by the api and the consumers.
	Certificates *certificate.Service

	Courseware *courseware.Service
}
