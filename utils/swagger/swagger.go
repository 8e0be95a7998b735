package swagger

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

type SwaggerConfig struct {
	Title         string
	SwaggerDocURL string
	// AuthURL is the login endpoint; a successful login sets the session cookie
	AuthURL string
}

const swaggerHTML = `<!DOCTYPE html>
<html lang="it">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.css" />
    <style>
        html { box-sizing: border-box; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin: 0; background: #fafafa; }
        .login-bar {
            display: flex;
            gap: 8px;
            align-items: center;
            padding: 12px 20px;
            background: #f8f9fa;
            border-bottom: 1px solid #dee2e6;
            font-family: sans-serif;
            font-size: 13px;
        }
        .login-bar input { padding: 6px 10px; border: 1px solid #d9d9d9; border-radius: 4px; }
        .login-bar button { padding: 6px 14px; border: 0; border-radius: 4px; background: #4990e2; color: #fff; cursor: pointer; }
        .login-bar button:disabled { background: #6c757d; cursor: not-allowed; }
        #login-status { color: #3b4151; }
    </style>
</head>
<body data-doc-url="{{.SwaggerDocURL}}" data-auth-url="{{.AuthURL}}">
    <div class="login-bar">
        <strong>Accesso</strong>
        <input type="text" id="login-username" placeholder="Username" />
        <input type="password" id="login-password" placeholder="Password" />
        <button id="login-button" onclick="performAuthentication()">Accedi</button>
        <span id="login-status"></span>
    </div>
    <div id="swagger-ui"></div>

    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js" charset="UTF-8"> </script>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-standalone-preset.js" charset="UTF-8"> </script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: document.body.dataset.docUrl,
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                layout: "StandaloneLayout",
                docExpansion: "list",
                validatorUrl: null,
                requestInterceptor: function(req) {
                    req.credentials = 'same-origin';
                    return req;
                }
            });
        };

        // The session cookie set by the login response authenticates every
        // request sent from this page
        window.performAuthentication = async function() {
            const username = document.getElementById('login-username').value.trim();
            const password = document.getElementById('login-password').value.trim();
            const button = document.getElementById('login-button');
            const status = document.getElementById('login-status');

            if (!username || !password) {
                status.textContent = 'Inserisci username e password';
                return;
            }

            button.disabled = true;
            try {
                const response = await fetch(document.body.dataset.authUrl, {
                    method: 'POST',
                    credentials: 'same-origin',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ username: username, password: password })
                });
                const data = await response.json();
                if (!response.ok) {
                    throw new Error(data.message || 'Accesso non riuscito');
                }
                const user = data.data && data.data.user;
                status.textContent = 'Connesso come ' + (user ? user.username : username);
            } catch (error) {
                status.textContent = error.message;
            } finally {
                button.disabled = false;
            }
        };
    </script>
</body>
</html>`

// ServeSwaggerUI serves the Swagger UI with a login bar
func ServeSwaggerUI(config SwaggerConfig) gin.HandlerFunc {
	// Set defaults
	if config.Title == "" {
		config.Title = "API Documentation"
	}
	if config.SwaggerDocURL == "" {
		config.SwaggerDocURL = "/swagger/doc.json"
	}
	if config.AuthURL == "" {
		config.AuthURL = "/app/auth/login"
	}

	tmpl := template.Must(template.New("swagger").Parse(swaggerHTML))

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(c.Writer, config); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render Swagger UI"})
		}
	}
}

// ServeDoc serves the OpenAPI document registered with swag
func ServeDoc() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "API documentation not registered"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
