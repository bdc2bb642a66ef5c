package controller

// Auth overlay status lines.
const (
	MsgLoginRequired    = "Username et mot de passe requis."
	MsgLoginPending     = "Connexion en cours..."
	MsgLoginInvalid     = "Identifiants invalides."
	MsgLoginUnreachable = "Erreur de connexion au serveur."
	msgLoggedInFmt      = "Connecté en tant que %s (%s)"

	MsgRegisterRequired    = "Tous les champs sont obligatoires."
	MsgRegisterMismatch    = "Les mots de passe ne correspondent pas."
	MsgRegisterPending     = "Création du compte..."
	MsgRegisterFailed      = "Erreur lors de la création du compte."
	MsgRegisterDone        = "Compte créé avec succès. Tu peux maintenant te connecter."
	MsgRegisterUnreachable = "Erreur réseau lors de la création du compte."

	MsgForgotRequired = "Merci de remplir tous les champs."
	msgForgotDoneFmt  = "Demande enregistrée pour \"%s\" (%s), contact : %s. L'administrateur vérifiera."
)

// Workspace messages.
const (
	MsgFilesUnavailable = "Impossible de récupérer les fichiers."
	MsgFilesFailed      = "Erreur lors de la récupération des fichiers."
)

// Settings status lines.
const (
	MsgSettingsLoginRequired = "Connecte-toi pour accéder aux paramètres."
	MsgSettingsLoading       = "Chargement..."
	MsgSettingsLoaded        = "Paramètres chargés."
	MsgSettingsUnavailable   = "Impossible de charger les paramètres."
	MsgSettingsNetwork       = "Erreur réseau."

	MsgLoginFirst       = "Connecte-toi."
	MsgSettingsSaving   = "Enregistrement..."
	MsgSettingsSaved    = "Paramètres sauvegardés."
	MsgSettingsSaveFail = "Erreur lors de la sauvegarde."

	MsgPasswordRequired = "Remplis tous les champs."
	MsgPasswordMismatch = "Les nouveaux mots de passe ne correspondent pas."
	MsgPasswordPending  = "Modification en cours..."
	MsgPasswordChanged  = "Mot de passe modifié."

	// MsgGenericError is shown when a failure carries no detail.
	MsgGenericError = "Erreur"
	// MsgNetwork is the connectivity failure of the settings actions.
	MsgNetwork = "Erreur réseau"
)

// Alerts.
const (
	AlertMustLogin      = "Tu dois être connecté."
	AlertUploadFailed   = "Erreur upload."
	AlertUploadDone     = "Upload OK."
	AlertNetwork        = "Erreur réseau."
	AlertDownloadFailed = "Erreur téléchargement."
	AlertTargetRequired = "Entrez un nom d’utilisateur."
)
