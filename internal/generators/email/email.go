// Package email registers the units that write the generated
// application's transactional email service and its HTML templates.
package email

import (
	"context"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the email units to the registry.
func Register(reg *orchestrator.Registry) {
	completeAuth := func(cfg *config.Config) bool { return cfg.HasCompleteAuth() }

	reg.MustRegister(orchestrator.Unit{
		Name:        "email-service",
		Category:    "email",
		Priority:    70,
		Requires:    []string{"config-email"},
		EnabledWhen: completeAuth,
		Description: "Write the SMTP email service",
		Generate:    generateEmailService,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "email-template",
		Category:    "email",
		Priority:    71,
		EnabledWhen: completeAuth,
		Description: "Write the HTML email templates",
		Generate:    generateEmailTemplates,
	})
}

func generateEmailService(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"from email.mime.multipart import MIMEMultipart",
		"from email.mime.text import MIMEText",
		"import aiosmtplib",
		"from app.core.config.settings import settings",
		"from app.core.logger import logger_manager",
		"from app.utils.email_templates import render_template",
	}

	body := `logger = logger_manager.get_logger(__name__)


class EmailService:
    """Send transactional email over SMTP."""

    def __init__(self):
        self.email = settings.email

    def _build_message(
        self, subject: str, recipient: str, html: str
    ) -> MIMEMultipart:
        message = MIMEMultipart("alternative")
        message["Subject"] = subject
        message["To"] = recipient
        sender = self.email.EMAIL_FROM_EMAIL or self.email.EMAIL_HOST_USER
        if self.email.EMAIL_FROM_NAME:
            message["From"] = f"{self.email.EMAIL_FROM_NAME} <{sender}>"
        else:
            message["From"] = sender
        message.attach(MIMEText(html, "html"))
        return message

    async def send_email(
        self, subject: str, recipient: str, template: str, **context
    ) -> bool:
        """Render a named template and deliver it; returns delivery success."""
        try:
            html = render_template(template, **context)
            message = self._build_message(subject, recipient, html)
            await aiosmtplib.send(
                message,
                hostname=self.email.EMAIL_HOST,
                port=self.email.EMAIL_PORT,
                username=self.email.EMAIL_HOST_USER or None,
                password=self.email.EMAIL_HOST_PASSWORD.get_secret_value() or None,
                start_tls=self.email.EMAIL_USE_TLS,
                use_tls=self.email.EMAIL_USE_SSL,
                timeout=self.email.EMAIL_TIMEOUT,
            )
            logger.info(f"Email sent to {recipient}: {subject}")
            return True
        except Exception as e:
            logger.error(f"Failed to send email to {recipient}: {e}")
            return False


email_service = EmailService()
`

	return tree.WritePython("app/utils/email.py", "Email service", imports, body)
}

func generateEmailTemplates(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	// Templates are rendered with str.format, so they stick to inline
	// styles; a <style> block's braces would collide with the placeholders.
	body := `VERIFICATION_TEMPLATE = """\
<html>
  <body style="font-family: Arial, sans-serif; color: #333333; margin: 0; padding: 24px;">
    <h2 style="color: #1a73e8;">Verify your email</h2>
    <p>Hi {username},</p>
    <p>Use the code below to verify your email address:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{code}</p>
    <p>The code expires in 60 minutes. If you did not create an account,
    you can ignore this email.</p>
  </body>
</html>
"""

WELCOME_TEMPLATE = """\
<html>
  <body style="font-family: Arial, sans-serif; color: #333333; margin: 0; padding: 24px;">
    <h2 style="color: #1a73e8;">Welcome, {username}!</h2>
    <p>Your email address has been verified and your account is ready to use.</p>
  </body>
</html>
"""

PASSWORD_RESET_TEMPLATE = """\
<html>
  <body style="font-family: Arial, sans-serif; color: #333333; margin: 0; padding: 24px;">
    <h2 style="color: #1a73e8;">Password reset</h2>
    <p>Hi {username},</p>
    <p>Use the code below to reset your password:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{code}</p>
    <p>The code expires in 60 minutes. If you did not request a reset,
    you can ignore this email.</p>
  </body>
</html>
"""

EMAIL_TEMPLATES: dict[str, str] = {
    "verification": VERIFICATION_TEMPLATE,
    "welcome": WELCOME_TEMPLATE,
    "password_reset": PASSWORD_RESET_TEMPLATE,
}


def render_template(name: str, **context) -> str:
    """Render a named template with str.format placeholders."""
    try:
        template = EMAIL_TEMPLATES[name]
    except KeyError:
        raise ValueError(f"Unknown email template: {name}") from None
    return template.format(**context)
`

	return tree.WritePython("app/utils/email_templates.py", "Email templates", nil, body)
}
