package email

// ConfirmationData is rendered into the registration confirmation email.
type ConfirmationData struct {
	Link    string
	AppName string
}

// RecoveryData is rendered into the password recovery email.
type RecoveryData struct {
	Link    string
	AppName string
}

const (
	confirmationSubject = "Confirm your registration"
	recoverySubject     = "Password recovery"
)

const emailTemplates = `
{{define "confirmation"}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.AppName}}</title></head>
<body style="font-family: sans-serif; color: #333;">
    <h1>Thanks for your registration</h1>
    <p>To finish registration please follow the link below:
        <a href="{{.Link}}">complete registration</a>
    </p>
    <p>If you did not sign up for {{.AppName}}, ignore this email.</p>
</body>
</html>
{{end}}

{{define "recovery"}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.AppName}}</title></head>
<body style="font-family: sans-serif; color: #333;">
    <h1>Password recovery</h1>
    <p>To finish password recovery please follow the link below:
        <a href="{{.Link}}">recovery password</a>
    </p>
    <p>The link expires soon. If you did not ask for a new password, ignore this email.</p>
</body>
</html>
{{end}}
`
